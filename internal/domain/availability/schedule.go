package availability

import (
	"time"

	"github.com/salutech-dev/medbook-api/internal/models"
	"github.com/salutech-dev/medbook-api/internal/timezone"
)

const (
	// SlotMinutes is the fixed length of every bookable slot.
	SlotMinutes = 30

	// LeadTimeMinutes is the minimum forward buffer before a same-day
	// slot may be offered.
	LeadTimeMinutes = 30
)

type SourceKind int

const (
	// SourceNone means no usable schedule governs the date.
	SourceNone SourceKind = iota

	// SourceClinic means the provider has an active clinic affiliation
	// and the clinic's weekly template applies. There is no fallback to
	// the provider's own template while the affiliation is active.
	SourceClinic

	// SourceIndependent means the provider's own branch template applies.
	SourceIndependent
)

// Source is the Schedule Resolver's answer for one (provider, date) pair.
// Window is only meaningful when Kind is not SourceNone.
type Source struct {
	Kind SourceKind

	// Clinic identity, set when Kind == SourceClinic.
	ClinicID uint
	DoctorID uint

	// Branch identity, set when Kind == SourceIndependent.
	BranchID uint

	Window DayWindow
}

// DayWindow is a weekly template entry anchored to a concrete civil date.
type DayWindow struct {
	Start time.Time
	End   time.Time

	HasBreak   bool
	BreakStart time.Time
	BreakEnd   time.Time
}

// ResolveWindow anchors a template entry to a date. It returns false when
// the entry is absent, disabled, or its times are missing or inverted —
// all of which mean "no schedule" for the day. A break that is malformed
// or falls outside the window is ignored rather than failing the day.
func ResolveWindow(entry *models.WeeklySchedule, date time.Time) (DayWindow, bool) {
	if entry == nil || !entry.Enabled {
		return DayWindow{}, false
	}

	start, ok := timezone.AtClock(date, entry.StartTime)
	if !ok {
		return DayWindow{}, false
	}
	end, ok := timezone.AtClock(date, entry.EndTime)
	if !ok || !start.Before(end) {
		return DayWindow{}, false
	}

	w := DayWindow{Start: start, End: end}

	if entry.BreakStart != "" && entry.BreakEnd != "" {
		bs, ok1 := timezone.AtClock(date, entry.BreakStart)
		be, ok2 := timezone.AtClock(date, entry.BreakEnd)
		if ok1 && ok2 && bs.Before(be) && !bs.Before(start) && !be.After(end) {
			w.HasBreak = true
			w.BreakStart = bs
			w.BreakEnd = be
		}
	}

	return w, true
}
