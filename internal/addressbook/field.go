package addressbook

import (
	"regexp"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var phoneRegex = regexp.MustCompile(config.PhonePattern)

// Name is a contact's display name. It is the record's identity and never changes.
type Name struct {
	value string
}

// NewName accepts any non-empty string.
func NewName(raw string) (Name, error) {
	if raw == "" {
		return Name{}, &ValidationError{Field: FieldName, Value: raw, Reason: config.ErrNameEmpty}
	}
	return Name{value: raw}, nil
}

func (n Name) String() string {
	return n.value
}

// Key returns the case-insensitive identity used by AddressBook.
func (n Name) Key() string {
	return nameKey(n.value)
}

// nameKey lower-cases with full Unicode rules; a Caser is not safe for reuse
// across goroutines, so a fresh one is built per call.
func nameKey(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Phone is a validated ten-digit phone number.
type Phone struct {
	value string
}

// NewPhone accepts exactly ten ASCII digits, without separators or a leading '+'.
func NewPhone(raw string) (Phone, error) {
	if !phoneRegex.MatchString(raw) {
		return Phone{}, &ValidationError{Field: FieldPhone, Value: raw, Reason: config.ErrPhoneInvalid}
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string {
	return p.value
}

// Birthday is a validated DD.MM.YYYY date.
type Birthday struct {
	value string
	date  time.Time
}

// NewBirthday parses raw strictly as DD.MM.YYYY. time.Parse rejects
// impossible days such as 31.02 and honours leap years.
func NewBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatBirthday, raw)
	if err != nil {
		return Birthday{}, &ValidationError{Field: FieldBirthday, Value: raw, Reason: config.ErrBirthdayInvalid}
	}
	return Birthday{value: raw, date: t}, nil
}

// BirthdayFromDate builds a Birthday from an already parsed calendar date.
func BirthdayFromDate(t time.Time) Birthday {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Birthday{value: d.Format(config.DateFormatBirthday), date: d}
}

// Date returns the birthday as a UTC midnight time.
func (b Birthday) Date() time.Time {
	return b.date
}

func (b Birthday) String() string {
	return b.value
}
