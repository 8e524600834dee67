package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// namespaceContacts seeds the name-based UIDs written to each card, so a
// contact keeps the same UID across saves.
var namespaceContacts = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.AppID+"/contacts"))

// SkipFunc receives cards or fields that could not be imported. Dropped
// fields arrive as *FieldError. Returning from it continues decoding.
type SkipFunc func(err error)

// FieldError reports a single TEL or BDAY value dropped from an otherwise
// usable card.
type FieldError struct {
	Err error
}

func (e *FieldError) Error() string { return e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// Encode writes every record of book as a vCard 4.0 stream.
func Encode(w io.Writer, book *addressbook.AddressBook) error {
	enc := vcard.NewEncoder(w)
	for _, r := range book.Records() {
		if err := enc.Encode(recordToCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncodeCard, err)
		}
	}
	return nil
}

func recordToCard(r *addressbook.Record) vcard.Card {
	card := make(vcard.Card)
	name := r.Name().String()

	card.SetValue(vcard.FieldFormattedName, name)
	card.SetValue(vcard.FieldUID, uuid.NewSHA1(namespaceContacts, []byte(r.Name().Key())).URN())
	for _, p := range r.Phones() {
		card.AddValue(vcard.FieldTelephone, p.String())
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullDash))
	}

	vcard.ToV4(card)
	return card
}

// Decode reads every card from r and converts it to a Record.
// With a nil skip the first invalid card aborts decoding; otherwise the
// problem is reported to skip and the card or field is dropped.
func Decode(r io.Reader, skip SkipFunc) ([]*addressbook.Record, error) {
	dec := vcard.NewDecoder(r)
	var records []*addressbook.Record

	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken stream cannot be resynchronised.
			return nil, fmt.Errorf("%s: %w", config.ErrDecodeCard, err)
		}

		rec, err := cardToRecord(card, skip)
		if err != nil {
			if skip == nil {
				return nil, err
			}
			skip(err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func cardToRecord(card vcard.Card, skip SkipFunc) (*addressbook.Record, error) {
	// Name Strategy: FN (Formatted) > N (Structured)
	name := card.Value(vcard.FieldFormattedName)
	if name == "" {
		if n := card.Name(); n != nil {
			name = joinNonEmpty(n.GivenName, n.FamilyName)
		}
	}
	if name == "" {
		return nil, errors.New(config.ErrCardNoName)
	}

	rec, err := addressbook.NewRecord(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDecodeCard, err)
	}

	for _, tel := range card.Values(vcard.FieldTelephone) {
		if err := rec.AddPhone(tel); err != nil {
			err = fmt.Errorf("%s (%s): %w", config.ErrCardPhone, name, err)
			if skip == nil {
				return nil, err
			}
			skip(&FieldError{Err: err})
		}
	}

	if bday := card.Value(vcard.FieldBirthday); bday != "" {
		t, err := parseCardDate(bday)
		if err != nil {
			err = fmt.Errorf("%s (%s): %w", config.ErrCardBirthday, name, err)
			if skip == nil {
				return nil, err
			}
			skip(&FieldError{Err: err})
		} else {
			rec.SetBirthday(addressbook.BirthdayFromDate(t))
		}
	}

	return rec, nil
}

// parseCardDate handles the vCard BDAY layouts that carry a year.
// Truncated --MM-DD values have no year and cannot become a Birthday.
func parseCardDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

// logSkip is the SkipFunc used for imports: it records the problem and moves on.
func logSkip(err error) {
	slog.Warn(config.MsgSkippedCard,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyError, err)
}
