package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// FileStore persists an AddressBook as a single .vcf file.
type FileStore struct {
	Path string
}

// NewFileStore creates a store bound to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the address book. A missing file yields an empty book; any
// other failure is returned to the caller.
func (s *FileStore) Load() (*addressbook.AddressBook, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, s.Path,
	)

	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(config.MsgBookMissing)
		return addressbook.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLoadBook, err)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = f.Close() }()

	records, err := Decode(f, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLoadBook, err)
	}

	book := addressbook.New()
	for _, r := range records {
		book.AddRecord(r)
	}

	log.Info(config.MsgBookLoaded, config.LogKeyRecords, book.Len())
	return book, nil
}

// Save replaces the file with the full content of book. The data goes to a
// temporary file in the same directory first and is renamed into place, so
// a crash never leaves a half-written book behind.
func (s *FileStore) Save(book *addressbook.AddressBook) error {
	start := time.Now()
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %s: %w", config.ErrSaveBook, config.ErrCreateDir, err)
	}

	tmp, err := os.CreateTemp(dir, config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := Encode(tmp, book); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	if err := tmp.Chmod(config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSaveBook, err)
	}
	committed = true

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, s.Path,
		config.LogKeyRecords, book.Len(),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return nil
}

// ImportResult summarises a merge of foreign vCards into a book.
type ImportResult struct {
	Added int
	// Skipped counts cards left out: invalid ones and names already present.
	Skipped int
	// DroppedFields counts invalid TEL or BDAY values removed from imported cards.
	DroppedFields int
}

// Import merges the cards of a .vcf file into book. Contacts whose name
// already exists are left untouched; invalid cards and fields are logged
// and skipped.
func Import(path string, book *addressbook.AddressBook) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%s: %w", config.ErrOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	var res ImportResult
	skip := func(err error) {
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			res.DroppedFields++
		} else {
			res.Skipped++
		}
		logSkip(err)
	}

	records, err := Decode(io.LimitReader(f, config.MaxImportSize), skip)
	if err != nil {
		return res, err
	}

	for _, r := range records {
		if book.AddRecord(r) {
			res.Added++
		} else {
			res.Skipped++
		}
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyFile, path,
		config.LogKeyAdded, res.Added,
		config.LogKeySkipped, res.Skipped,
		config.LogKeyDropped, res.DroppedFields)
	return res, nil
}
