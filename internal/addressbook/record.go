package addressbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Record is one contact: an immutable name, an ordered set of unique phones
// and an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates an empty record for name.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's identity.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the phones in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates raw and appends it. Adding a number the record already
// holds is a no-op.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	if _, ok := r.FindPhone(raw); ok {
		return nil
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops raw if present.
func (r *Record) RemovePhone(raw string) {
	r.phones = slices.DeleteFunc(r.phones, func(p Phone) bool {
		return p.value == raw
	})
}

// EditPhone replaces oldRaw with newRaw. The new number is validated and
// added before the old one is removed, so a failed edit leaves the record as it was.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	if _, ok := r.FindPhone(oldRaw); !ok {
		return &NotFoundError{Kind: KindPhone, Key: oldRaw}
	}
	if oldRaw == newRaw {
		return nil
	}
	if err := r.AddPhone(newRaw); err != nil {
		return err
	}
	r.RemovePhone(oldRaw)
	return nil
}

// FindPhone looks up a phone by its exact raw value.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	i := slices.IndexFunc(r.phones, func(p Phone) bool {
		return p.value == raw
	})
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// AddBirthday validates raw and replaces any previous birthday.
func (r *Record) AddBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// SetBirthday stores an already validated birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

// PhoneList renders the phones joined by "; " in insertion order.
func (r *Record) PhoneList() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return strings.Join(values, config.PhoneSeparator)
}

func (r *Record) String() string {
	birthday := config.BirthdayUnset
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	return fmt.Sprintf(config.FormatRecordLine, r.name, birthday, r.PhoneList())
}
