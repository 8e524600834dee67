package assistant

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

type command struct {
	minArgs int
	exit    bool
	run     func(a *Assistant, args []string) (string, error)
}

var (
	cmdAddContact  = command{minArgs: 2, run: (*Assistant).addContact}
	cmdChangePhone = command{minArgs: 3, run: (*Assistant).changePhone}
	cmdDelete      = command{minArgs: 1, run: (*Assistant).deleteContact}
	cmdShowPhone   = command{minArgs: 1, run: (*Assistant).showPhone}
	cmdShowAll     = command{run: (*Assistant).showAll}
	cmdUpcoming    = command{run: (*Assistant).upcomingBirthdays}
	cmdClose       = command{exit: true, run: (*Assistant).goodbye}
)

// commands maps every accepted command name, aliases included, to its handler.
var commands = map[string]command{
	config.CmdHello:           {run: (*Assistant).hello},
	config.CmdHelp:            {run: (*Assistant).help},
	config.CmdAddContact:      cmdAddContact,
	config.CmdAddContactAlias: cmdAddContact,
	config.CmdChangePhone:     cmdChangePhone,
	config.CmdChangeAlias:     cmdChangePhone,
	config.CmdRemovePhone:     {minArgs: 2, run: (*Assistant).removePhone},
	config.CmdDeleteContact:   cmdDelete,
	config.CmdDeleteAlias:     cmdDelete,
	config.CmdShowPhone:       cmdShowPhone,
	config.CmdShowPhoneAlias:  cmdShowPhone,
	config.CmdShowAll:         cmdShowAll,
	config.CmdShowAllAlias:    cmdShowAll,
	config.CmdAddBirthday:     {minArgs: 2, run: (*Assistant).addBirthday},
	config.CmdShowBirthday:    {minArgs: 1, run: (*Assistant).showBirthday},
	config.CmdUpcoming:        cmdUpcoming,
	config.CmdUpcomingAlias:   cmdUpcoming,
	config.CmdExportCalendar:  {minArgs: 1, run: (*Assistant).exportCalendar},
	config.CmdImport:          {minArgs: 1, run: (*Assistant).importContacts},
	config.CmdClose:           cmdClose,
	config.CmdExit:            cmdClose,
}

func (a *Assistant) hello([]string) (string, error) {
	return a.Messages.Get(config.TKeyHello, nil), nil
}

func (a *Assistant) help([]string) (string, error) {
	return a.Messages.Get(config.TKeyHelp, nil), nil
}

func (a *Assistant) goodbye([]string) (string, error) {
	return a.Messages.Get(config.TKeyGoodbye, nil), nil
}

// find returns the record for name or a NotFoundError.
func (a *Assistant) find(name string) (*addressbook.Record, error) {
	rec, ok := a.Book.Find(name)
	if !ok {
		return nil, &addressbook.NotFoundError{Kind: addressbook.KindContact, Key: name}
	}
	return rec, nil
}

// add-contact <name> <phone>
func (a *Assistant) addContact(args []string) (string, error) {
	name, phone := args[0], args[1]

	if rec, ok := a.Book.Find(name); ok {
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
		return a.Messages.Get(config.TKeyContactUpdated, nil), nil
	}

	rec, err := addressbook.NewRecord(name)
	if err != nil {
		return "", err
	}
	// Insert only once the phone is valid.
	if err := rec.AddPhone(phone); err != nil {
		return "", err
	}
	a.Book.AddRecord(rec)
	return a.Messages.Get(config.TKeyContactAdded, nil), nil
}

// change-phone <name> <old> <new>
func (a *Assistant) changePhone(args []string) (string, error) {
	rec, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return a.Messages.Get(config.TKeyPhoneChanged, nil), nil
}

// remove-phone <name> <phone>
func (a *Assistant) removePhone(args []string) (string, error) {
	rec, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if _, ok := rec.FindPhone(args[1]); !ok {
		return "", &addressbook.NotFoundError{Kind: addressbook.KindPhone, Key: args[1]}
	}
	rec.RemovePhone(args[1])
	return a.Messages.Get(config.TKeyPhoneRemoved, nil), nil
}

// delete-contact <name>
func (a *Assistant) deleteContact(args []string) (string, error) {
	if !a.Book.Delete(args[0]) {
		return "", &addressbook.NotFoundError{Kind: addressbook.KindContact, Key: args[0]}
	}
	return a.Messages.Get(config.TKeyContactDeleted, nil), nil
}

// show-phone <name>
func (a *Assistant) showPhone(args []string) (string, error) {
	rec, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if len(rec.Phones()) == 0 {
		return a.Messages.Get(config.TKeyNoPhones, map[string]any{"Name": rec.Name().String()}), nil
	}
	return rec.PhoneList(), nil
}

// show-all
func (a *Assistant) showAll([]string) (string, error) {
	if a.Book.Len() == 0 {
		return a.Messages.Get(config.TKeyBookEmpty, nil), nil
	}
	return a.Book.String(), nil
}

// add-birthday <name> <DD.MM.YYYY>
func (a *Assistant) addBirthday(args []string) (string, error) {
	rec, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.AddBirthday(args[1]); err != nil {
		return "", err
	}
	return a.Messages.Get(config.TKeyBirthdayAdded, nil), nil
}

// show-birthday <name>
func (a *Assistant) showBirthday(args []string) (string, error) {
	rec, err := a.find(args[0])
	if err != nil {
		return "", err
	}
	b, ok := rec.Birthday()
	if !ok {
		return a.Messages.Get(config.TKeyBirthdayUnset, map[string]any{"Name": rec.Name().String()}), nil
	}
	return b.String(), nil
}

// list-upcoming-birthdays [days]
func (a *Assistant) upcomingBirthdays(args []string) (string, error) {
	days, err := a.windowArg(args, 0)
	if err != nil {
		return "", err
	}

	upcoming := a.Book.UpcomingBirthdays(a.Clock.Now(), days)
	if len(upcoming) == 0 {
		return a.Messages.Get(config.TKeyNoUpcoming, map[string]any{"Days": days}), nil
	}
	return a.FormatUpcoming(upcoming), nil
}

// FormatUpcoming renders one "name: DD.MM.YYYY" line per entry.
func (a *Assistant) FormatUpcoming(upcoming []addressbook.UpcomingBirthday) string {
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = a.Messages.Get(config.TKeyUpcomingLine, map[string]any{
			"Name": u.Name,
			"Date": u.CongratulationDate,
		})
	}
	return strings.Join(lines, config.RecordSeparator)
}

// export-calendar <file.ics> [days]
func (a *Assistant) exportCalendar(args []string) (string, error) {
	days, err := a.windowArg(args, 1)
	if err != nil {
		return "", err
	}

	data, count, err := a.Exporter.Export(a.Book, days)
	if err != nil {
		return "", err
	}
	path := args[0]
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	return a.Messages.Get(config.TKeyCalendarExported, map[string]any{"Count": count, "Path": path}), nil
}

// import <file.vcf>
func (a *Assistant) importContacts(args []string) (string, error) {
	res, err := storage.Import(args[0], a.Book)
	if err != nil {
		return "", err
	}
	return a.Messages.Get(config.TKeyContactsImported, map[string]any{
		"Added":   res.Added,
		"Skipped": res.Skipped,
		"Dropped": res.DroppedFields,
	}), nil
}

// windowArg reads an optional day count at args[i], defaulting to WindowDays.
func (a *Assistant) windowArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return a.WindowDays, nil
	}
	days, err := strconv.Atoi(args[i])
	if err != nil || days < 0 || days > config.MaxWindowDays {
		return 0, &addressbook.ValidationError{Field: config.FlagDays, Value: args[i], Reason: config.ErrWindowArg}
	}
	return days, nil
}
