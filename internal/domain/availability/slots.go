package availability

import "time"

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}

// GenerateSlots partitions the window into contiguous fixed-length slots,
// ascending. A slot is emitted only when it fits entirely before the window
// end, and is dropped (never truncated) when either of its edges lands
// inside the break interval.
func GenerateSlots(w DayWindow) []time.Time {
	duration := SlotMinutes * time.Minute

	var slots []time.Time
	for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(duration) {
		if w.HasBreak && touchesBreak(cur, cur.Add(duration), w) {
			continue
		}
		slots = append(slots, cur)
	}
	return slots
}

func touchesBreak(slotStart, slotEnd time.Time, w DayWindow) bool {
	startInside := !slotStart.Before(w.BreakStart) && slotStart.Before(w.BreakEnd)
	endInside := slotEnd.After(w.BreakStart) && !slotEnd.After(w.BreakEnd)
	return startInside || endInside
}

// FilterConflicts drops slots whose start exactly matches an occupied
// instant. Exact matching suffices: bookings are created on the same grid
// the generator emits.
func FilterConflicts(slots []time.Time, occupied []time.Time) []time.Time {
	if len(occupied) == 0 {
		return slots
	}

	taken := make(map[int64]struct{}, len(occupied))
	for _, t := range occupied {
		taken[t.Unix()] = struct{}{}
	}

	out := slots[:0]
	for _, s := range slots {
		if _, hit := taken[s.Unix()]; hit {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterBlocked drops slots overlapping any of the blocked intervals.
// A surviving slot is clear of all of them.
func FilterBlocked(slots []time.Time, blocks []Interval) []time.Time {
	if len(blocks) == 0 {
		return slots
	}

	duration := SlotMinutes * time.Minute

	out := slots[:0]
	for _, s := range slots {
		blocked := false
		for _, b := range blocks {
			if b.Overlaps(s, s.Add(duration)) {
				blocked = true
				break
			}
		}
		if !blocked {
			out = append(out, s)
		}
	}
	return out
}

// FilterLeadTime keeps only slots starting strictly after the buffer
// instant. Applied on the current civil date only.
func FilterLeadTime(slots []time.Time, buffer time.Time) []time.Time {
	out := slots[:0]
	for _, s := range slots {
		if s.After(buffer) {
			out = append(out, s)
		}
	}
	return out
}
