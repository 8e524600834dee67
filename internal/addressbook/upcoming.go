package addressbook

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// UpcomingBirthday is one entry of the upcoming-birthday report.
type UpcomingBirthday struct {
	Name string

	// Date is the congratulation day: the next occurrence of the birthday,
	// moved to Monday when it falls on a weekend.
	Date time.Time

	// CongratulationDate is Date rendered as DD.MM.YYYY.
	CongratulationDate string

	// Shifted reports whether Date was moved off a weekend.
	Shifted bool

	// Birthday is the unshifted next occurrence.
	Birthday time.Time
}

// UpcomingBirthdays lists the records whose next birthday lies within
// windowDays of today, both ends inclusive. Results keep insertion order.
func (b *AddressBook) UpcomingBirthdays(today time.Time, windowDays int) []UpcomingBirthday {
	todayStart := startOfDay(today)
	var out []UpcomingBirthday

	for _, r := range b.Records() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}

		next := nextOccurrence(todayStart, bday.Date())
		delta := daysBetween(todayStart, next)
		if delta < 0 || delta > windowDays {
			continue
		}

		congrats := adjustForWeekend(next)
		out = append(out, UpcomingBirthday{
			Name:               r.Name().String(),
			Date:               congrats,
			CongratulationDate: congrats.Format(config.DateFormatBirthday),
			Shifted:            !congrats.Equal(next),
			Birthday:           next,
		})
	}

	slog.Debug(config.MsgUpcomingScan,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyToday, todayStart.Format(config.DateFormatBirthday),
		config.LogKeyWindow, windowDays,
		config.LogKeyCount, len(out))
	return out
}

// nextOccurrence projects the birthday's month and day onto today's year,
// rolling over to next year when that date has already passed.
// time.Date normalises Feb 29 to Mar 1 in non-leap years.
func nextOccurrence(todayStart, birthDate time.Time) time.Time {
	loc := todayStart.Location()
	candidate := time.Date(todayStart.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(todayStart.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}

// adjustForWeekend moves Saturday and Sunday forward to the following Monday.
func adjustForWeekend(d time.Time) time.Time {
	if isWeekend(d) {
		return nextWeekday(d, time.Monday)
	}
	return d
}

// nextWeekday returns the first day strictly after d that falls on wd.
func nextWeekday(d time.Time, wd time.Weekday) time.Time {
	ahead := int(wd) - int(d.Weekday())
	if ahead <= 0 {
		ahead += 7
	}
	return d.AddDate(0, 0, ahead)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring DST jumps.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
