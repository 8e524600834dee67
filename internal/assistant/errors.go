package assistant

import (
	"fmt"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// ArgumentError reports a command invoked with too few arguments.
type ArgumentError struct {
	Command string
	Want    int
	Got     int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf(config.ErrMsgArguments, e.Command, e.Want, e.Got)
}
