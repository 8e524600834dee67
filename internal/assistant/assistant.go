package assistant

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/calendar"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// Store persists the book when the session ends.
type Store interface {
	Save(book *addressbook.AddressBook) error
}

// Assistant is the interactive command loop around one AddressBook.
// It is single-threaded: only the goroutine running Run touches the book.
type Assistant struct {
	Book       *addressbook.AddressBook
	Store      Store
	Clock      addressbook.Clock
	Exporter   *calendar.Exporter
	Messages   *Messages
	WindowDays int

	In  io.Reader
	Out io.Writer
}

// New wires an Assistant with the real clock and the standard streams.
func New(book *addressbook.AddressBook, store Store, msgs *Messages) *Assistant {
	clock := addressbook.RealClock{}
	return &Assistant{
		Book:  book,
		Store: store,
		Clock: clock,
		Exporter: &calendar.Exporter{
			Clock: clock,
			FormatSummary: func(name string) string {
				return msgs.Get(config.TKeyEventSummary, map[string]any{"Name": name})
			},
		},
		Messages:   msgs,
		WindowDays: addressbook.DefaultWindowDays,
		In:         os.Stdin,
		Out:        os.Stdout,
	}
}

// Run reads commands until close/exit, end of input or ctx cancellation,
// then saves the book once through Store.
func (a *Assistant) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompAssistant)
	log.Info(config.MsgSessionStart, config.LogKeyRecords, a.Book.Len())

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	// On cancellation the reader may stay blocked in Scan until In yields a
	// line or closes. The CLI exits right after Run returns, so it is not reaped.
	go func() {
		scanner := bufio.NewScanner(a.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	fmt.Fprintln(a.Out, a.Messages.Get(config.TKeyWelcome, nil))

	for {
		fmt.Fprint(a.Out, a.Messages.Get(config.TKeyPrompt, nil))

		select {
		case <-ctx.Done():
			log.Info(config.MsgCtxCancel)
			fmt.Fprintln(a.Out)
			return a.finish(log, nil)

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(a.Out)
				var err error
				if rerr := <-readErr; rerr != nil {
					err = fmt.Errorf("%s: %w", config.ErrReadInput, rerr)
				}
				return a.finish(log, err)
			}

			reply, exit := a.Execute(line)
			if reply != "" {
				fmt.Fprintln(a.Out, reply)
			}
			if exit {
				return a.finish(log, nil)
			}
		}
	}
}

// finish persists the book and joins any save failure with cause.
func (a *Assistant) finish(log *slog.Logger, cause error) error {
	defer log.Info(config.MsgSessionEnd)
	if a.Store == nil {
		return cause
	}
	if err := a.Store.Save(a.Book); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// Execute runs one command line and returns the text to print and whether
// the session should end. Errors never escape: they become the reply.
func (a *Assistant) Execute(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	cmd, ok := commands[name]
	if !ok {
		return a.Messages.Get(config.TKeyUnknownCommand, nil), false
	}

	var reply string
	var err error
	if len(args) < cmd.minArgs {
		err = &ArgumentError{Command: name, Want: cmd.minArgs, Got: len(args)}
	} else {
		reply, err = cmd.run(a, args)
	}

	if err != nil {
		slog.Warn(config.MsgCommandFailed,
			config.LogKeyComponent, config.CompAssistant,
			config.LogKeyCommand, name,
			config.LogKeyError, err)
		return a.describe(err), false
	}

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyCommand, name,
		config.LogKeyArgs, len(args))
	return reply, cmd.exit
}

// describe converts an error into the user-facing message. Input and
// lookup problems read as an invalid command; anything else is unexpected.
func (a *Assistant) describe(err error) string {
	var (
		vErr *addressbook.ValidationError
		nErr *addressbook.NotFoundError
		aErr *ArgumentError
	)
	data := map[string]any{"Error": err.Error()}
	switch {
	case errors.As(err, &vErr), errors.As(err, &nErr), errors.As(err, &aErr):
		return a.Messages.Get(config.TKeyInvalidCommand, data)
	default:
		return a.Messages.Get(config.TKeyUnexpectedError, data)
	}
}
