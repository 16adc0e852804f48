package timezone

import "time"

// All civil date/time math in the system is anchored to a single fixed
// offset. The marketplace operates in one country (UTC-5, no DST), so the
// zone is a constant rather than a tzdata lookup.
var Civil = time.FixedZone("UTC-05", -5*60*60)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

func Now() time.Time {
	return time.Now().In(Civil)
}

// Today returns the current civil date at midnight.
func Today() time.Time {
	return DateOf(Now())
}

// DateOf truncates an instant to its civil date (midnight, fixed zone).
func DateOf(t time.Time) time.Time {
	t = t.In(Civil)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Civil)
}

// At combines a civil date with a clock time. Seconds and sub-seconds are
// always zero: slots, bookings and blocks all live on a minute grid.
func At(date time.Time, hour, minute int) time.Time {
	date = date.In(Civil)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, Civil)
}

// AtClock combines a civil date with an "HH:MM" string. Only hour and minute
// of the stored value matter; a malformed value yields ok=false.
func AtClock(date time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return time.Time{}, false
	}
	return At(date, t.Hour(), t.Minute()), true
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Civil)
}

func FormatClock(t time.Time) string {
	return t.In(Civil).Format(ClockLayout)
}

// DayOfWeek maps a civil date to the schedule convention: Monday=0..Sunday=6.
func DayOfWeek(date time.Time) int {
	return (int(date.In(Civil).Weekday()) + 6) % 7
}
