package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Mexico_City"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock returns the current instant. Use cases receive one so tests can pin "now".
type Clock func() time.Time

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// SystemClock reads the wall clock in the business timezone.
func SystemClock(tz string) Clock {
	loc := Location(tz)
	return func() time.Time { return time.Now().In(loc) }
}

// Fixed always returns t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Today formats the calendar date of now.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Combine parses a stored date + time pair in loc.
func Combine(date, hm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hm, loc)
}
