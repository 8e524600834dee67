package calendar

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

var namespaceEvents = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.AppID+"/events"))

// Exporter turns the upcoming-birthday report into an iCalendar document.
type Exporter struct {
	Clock addressbook.Clock

	// FormatSummary allows the caller to inject localized event titles.
	FormatSummary func(name string) string

	// ReminderTrigger is an ISO8601 duration such as "-P1D"; empty disables alarms.
	ReminderTrigger string
}

// Export builds an ICS document with one all-day event per contact to
// congratulate within windowDays. It returns the data and the event count.
func (e *Exporter) Export(book *addressbook.AddressBook, windowDays int) ([]byte, int, error) {
	now := e.Clock.Now()
	upcoming := book.UpcomingBirthdays(now, windowDays)

	// Handle case where no events are found.
	if len(upcoming) == 0 {
		var buf bytes.Buffer
		// A valid but empty VCALENDAR keeps calendar clients from flagging the file.
		buf.WriteString(config.StubVCalendar)
		e.logSuccess(0, buf.Len())
		return buf.Bytes(), 0, nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// Local time drives the logic, UTC is only used for stamping.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, u := range upcoming {
		event := e.createEvent(u)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	e.logSuccess(len(upcoming), buf.Len())
	return buf.Bytes(), len(upcoming), nil
}

func (e *Exporter) createEvent(u addressbook.UpcomingBirthday) *ical.Event {
	event := ical.NewEvent()

	// Deterministic UID: re-exporting the same week updates events instead of duplicating them.
	input := fmt.Sprintf(config.FormatEventUIDInput, u.Name, u.Birthday.Format(config.DateFormatFullDash))
	uid := uuid.NewSHA1(namespaceEvents, []byte(input)).String()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uid, config.ICalDomain))

	summary := fmt.Sprintf(config.FallbackSummary, u.Name)
	if e.FormatSummary != nil {
		summary = e.FormatSummary(u.Name)
	}
	event.Props.SetText(config.PropSummary, summary)

	if u.Shifted {
		event.Props.SetText(config.PropDescription,
			fmt.Sprintf(config.FormatEventShifted, u.Birthday.Format(config.DateFormatBirthday)))
	}

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(u.Date)
	event.Props.Set(dtStartProp)

	if e.ReminderTrigger != "" {
		addAlarm(event, e.ReminderTrigger, summary)
	}
	return event
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func (e *Exporter) logSuccess(events, size int) {
	slog.Info(config.MsgCalendarDone,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyEvents, events,
		config.LogKeySizeBytes, size)
}
