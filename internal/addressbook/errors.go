package addressbook

import (
	"fmt"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// ValidationError reports malformed user input for one field.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(config.ErrMsgValidation, e.Field, e.Value, e.Reason)
}

// NotFoundError reports a lookup that matched nothing, either a contact
// name or a phone number inside a record.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(config.ErrMsgNotFound, e.Kind, e.Key)
}

// Lookup kinds used in NotFoundError.
const (
	KindContact = "contact"
	KindPhone   = "phone"
)

// Field names used in ValidationError.
const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldBirthday = "birthday"
)
