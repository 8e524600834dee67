package addressbook

import (
	"slices"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// DefaultWindowDays is the look-ahead used when the caller has no preference.
const DefaultWindowDays = config.DefaultWindowDays

// AddressBook indexes records by lower-cased name and remembers insertion order.
// It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord inserts r unless a record with the same case-insensitive name
// exists. It reports whether r was stored.
func (b *AddressBook) AddRecord(r *Record) bool {
	key := r.Name().Key()
	if _, exists := b.records[key]; exists {
		return false
	}
	b.records[key] = r
	b.order = append(b.order, key)
	return true
}

// Find looks a record up by name, ignoring case.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[nameKey(name)]
	return r, ok
}

// Delete removes the record for name, ignoring case, and reports whether one existed.
func (b *AddressBook) Delete(name string) bool {
	key := nameKey(name)
	if _, ok := b.records[key]; !ok {
		return false
	}
	delete(b.records, key)
	b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == key })
	return true
}

// Records returns every record in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.order)
}

func (b *AddressBook) String() string {
	lines := make([]string, 0, len(b.order))
	for _, r := range b.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, config.RecordSeparator)
}
