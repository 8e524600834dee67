package storage_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

func sampleBook(t *testing.T) *addressbook.AddressBook {
	t.Helper()
	book := addressbook.New()

	john, err := addressbook.NewRecord("John Doe")
	require.NoError(t, err)
	require.NoError(t, john.AddPhone("1234567890"))
	require.NoError(t, john.AddPhone("5555555555"))
	require.NoError(t, john.AddBirthday("29.02.2000"))
	book.AddRecord(john)

	jane, err := addressbook.NewRecord("Jane")
	require.NoError(t, err)
	book.AddRecord(jane)

	return book
}

func TestFileStore_LoadMissingFileGivesEmptyBook(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "absent.vcf"))

	book, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, book.Len())
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "book.vcf")
	store := storage.NewFileStore(path)

	original := sampleBook(t)
	require.NoError(t, store.Save(original))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "Address book must be owner-only")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, original.String(), loaded.String())

	john, ok := loaded.Find("john doe")
	require.True(t, ok)
	b, ok := john.Birthday()
	require.True(t, ok)
	assert.Equal(t, "29.02.2000", b.String())
}

func TestFileStore_SaveReplacesContent(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(filepath.Join(dir, "book.vcf"))

	require.NoError(t, store.Save(sampleBook(t)))

	smaller := sampleBook(t)
	smaller.Delete("John Doe")
	require.NoError(t, store.Save(smaller))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "No temporary files may be left behind")
}

func TestFileStore_LoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.vcf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a vcard"), 0o600))

	_, err := storage.NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestFileStore_LoadInvalidPhoneFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.vcf")
	content := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Bad\r\nTEL:12\r\nEND:VCARD\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := storage.NewFileStore(path).Load()
	assert.Error(t, err, "Our own file must never silently lose data")
}

func TestEncode_CardLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, storage.Encode(&buf, sampleBook(t)))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VCARD"))
	assert.Contains(t, out, "VERSION:4.0")
	assert.Contains(t, out, "FN:John Doe")
	assert.Contains(t, out, "TEL:1234567890")
	assert.Contains(t, out, "TEL:5555555555")
	assert.Contains(t, out, "BDAY:2000-02-29")
	assert.Contains(t, out, "UID:urn:uuid:")
}

func TestEncode_StableUID(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, storage.Encode(&a, sampleBook(t)))
	require.NoError(t, storage.Encode(&b, sampleBook(t)))
	assert.Equal(t, a.String(), b.String())
}

func TestDecode_DateFormats(t *testing.T) {
	tests := []struct {
		name      string
		bdayValue string
		want      string
		wantErr   bool
	}{
		{"ISO8601 Standard", "1990-10-25", "25.10.1990", false},
		{"Basic Format", "19901025", "25.10.1990", false},
		{"RFC3339", "1990-10-25T00:00:00Z", "25.10.1990", false},
		{"Truncated (Month-Day)", "--10-25", "", true},
		{"Garbage Data", "not-a-date", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nBDAY:" + tt.bdayValue + "\nEND:VCARD\n"

			records, err := storage.Decode(strings.NewReader(content), nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, records, 1)
			b, ok := records[0].Birthday()
			require.True(t, ok)
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestDecode_NameFallsBackToN(t *testing.T) {
	content := "BEGIN:VCARD\nVERSION:3.0\nN:Doe;John;;;\nEND:VCARD\n"

	records, err := storage.Decode(strings.NewReader(content), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "John Doe", records[0].Name().String())
}

func TestDecode_SkipCollectsProblems(t *testing.T) {
	content := "BEGIN:VCARD\nVERSION:3.0\nFN:Good\nTEL:1234567890\nTEL:+1 (555) 010\nBDAY:--05-01\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:3.0\nNOTE:nameless\nEND:VCARD\n"

	var problems []error
	records, err := storage.Decode(strings.NewReader(content), func(err error) {
		problems = append(problems, err)
	})
	require.NoError(t, err)

	require.Len(t, records, 1, "The nameless card is dropped")
	assert.Equal(t, "1234567890", records[0].PhoneList(), "Invalid phones are dropped, valid ones kept")
	_, ok := records[0].Birthday()
	assert.False(t, ok)
	require.Len(t, problems, 3)

	var fieldErr *storage.FieldError
	assert.ErrorAs(t, problems[0], &fieldErr, "Bad TEL is a field problem")
	assert.ErrorAs(t, problems[1], &fieldErr, "Bad BDAY is a field problem")
	assert.False(t, errors.As(problems[2], &fieldErr), "A nameless card is a card problem")
}

func TestImport_MergesWithoutOverwriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.vcf")
	content := "BEGIN:VCARD\nVERSION:3.0\nFN:john doe\nTEL:9999999999\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:3.0\nFN:New Person\nTEL:1111111111\nBDAY:1985-03-16\nEND:VCARD\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	book := sampleBook(t)
	res, err := storage.Import(path, book)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Skipped)
	assert.Zero(t, res.DroppedFields)
	assert.Equal(t, 3, book.Len())

	john, _ := book.Find("John Doe")
	assert.Equal(t, "1234567890; 5555555555", john.PhoneList(), "Existing contacts are not overwritten")
}

func TestImport_CountsDroppedFieldsSeparately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.vcf")
	content := "BEGIN:VCARD\nVERSION:3.0\nFN:Zoe\nTEL:0501234567\nTEL:12-34\nEND:VCARD\n" +
		"BEGIN:VCARD\nVERSION:3.0\nNOTE:nameless\nEND:VCARD\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	book := addressbook.New()
	res, err := storage.Import(path, book)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Skipped, "Only the nameless card is skipped")
	assert.Equal(t, 1, res.DroppedFields)

	zoe, ok := book.Find("zoe")
	require.True(t, ok)
	assert.Equal(t, "0501234567", zoe.PhoneList())
}

func TestImport_MissingFile(t *testing.T) {
	_, err := storage.Import(filepath.Join(t.TempDir(), "nope.vcf"), addressbook.New())
	assert.Error(t, err)
}
