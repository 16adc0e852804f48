package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salutech-dev/medbook-api/internal/timezone"
)

func civil(hour, minute int) time.Time {
	return time.Date(2026, 9, 3, hour, minute, 0, 0, timezone.Civil)
}

func window(startH, startM, endH, endM int) DayWindow {
	return DayWindow{
		Start: civil(startH, startM),
		End:   civil(endH, endM),
	}
}

func TestGenerateSlots_FullDayWithBreak(t *testing.T) {
	w := window(9, 0, 17, 0)
	w.HasBreak = true
	w.BreakStart = civil(12, 0)
	w.BreakEnd = civil(13, 0)

	slots := GenerateSlots(w)

	require.Len(t, slots, 14)
	assert.Equal(t, civil(9, 0), slots[0])
	assert.Equal(t, civil(11, 30), slots[5])
	assert.Equal(t, civil(13, 0), slots[6])
	assert.Equal(t, civil(16, 30), slots[13])

	for _, s := range slots {
		assert.False(t, s.Before(w.Start))
		assert.False(t, s.Add(SlotMinutes*time.Minute).After(w.End))
		assert.False(t, s.Equal(civil(12, 0)), "break slot must be dropped")
		assert.False(t, s.Equal(civil(12, 30)), "break slot must be dropped")
	}
}

func TestGenerateSlots_GridSpacing(t *testing.T) {
	slots := GenerateSlots(window(8, 0, 12, 0))

	require.Len(t, slots, 8)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, SlotMinutes*time.Minute, slots[i].Sub(slots[i-1]))
	}
}

func TestGenerateSlots_LastSlotMustFitEntirely(t *testing.T) {
	// 09:00-10:15 only fits two full slots; 10:00 would spill past the end.
	slots := GenerateSlots(window(9, 0, 10, 15))

	require.Len(t, slots, 2)
	assert.Equal(t, civil(9, 0), slots[0])
	assert.Equal(t, civil(9, 30), slots[1])
}

func TestGenerateSlots_EmptyWhenWindowTooShort(t *testing.T) {
	assert.Empty(t, GenerateSlots(window(9, 0, 9, 15)))
}

func TestGenerateSlots_MisalignedBreakDropsTouchingSlots(t *testing.T) {
	// Break 12:15-12:45 touches both the 12:00 and 12:30 slots.
	w := window(9, 0, 17, 0)
	w.HasBreak = true
	w.BreakStart = civil(12, 15)
	w.BreakEnd = civil(12, 45)

	slots := GenerateSlots(w)

	for _, s := range slots {
		assert.False(t, s.Equal(civil(12, 0)))
		assert.False(t, s.Equal(civil(12, 30)))
	}
}

func TestFilterConflicts_RemovesExactMatches(t *testing.T) {
	slots := GenerateSlots(window(9, 0, 12, 0))

	filtered := FilterConflicts(slots, []time.Time{civil(10, 0), civil(11, 30)})

	require.Len(t, filtered, 4)
	for _, s := range filtered {
		assert.False(t, s.Equal(civil(10, 0)))
		assert.False(t, s.Equal(civil(11, 30)))
	}
}

func TestFilterConflicts_NoOccupied(t *testing.T) {
	slots := GenerateSlots(window(9, 0, 11, 0))
	assert.Equal(t, slots, FilterConflicts(slots, nil))
}

func TestFilterBlocked_HalfOpenOverlap(t *testing.T) {
	slots := GenerateSlots(window(9, 0, 12, 0))

	// Block [10:00, 10:30): only the 10:00 slot overlaps. The 09:30 slot
	// ends exactly at the block start and survives, as does 10:30.
	blocks := []Interval{{Start: civil(10, 0), End: civil(10, 30)}}

	filtered := FilterBlocked(slots, blocks)

	require.Len(t, filtered, 5)
	for _, s := range filtered {
		assert.False(t, s.Equal(civil(10, 0)))
	}
}

func TestFilterBlocked_MultipleBlocksAccumulate(t *testing.T) {
	slots := GenerateSlots(window(9, 0, 12, 0))

	blocks := []Interval{
		{Start: civil(9, 0), End: civil(9, 30)},
		{Start: civil(11, 15), End: civil(11, 45)},
	}

	filtered := FilterBlocked(slots, blocks)

	// 09:00 gone; 11:00 and 11:30 both overlap the second block.
	require.Len(t, filtered, 3)
	assert.Equal(t, civil(9, 30), filtered[0])
	assert.Equal(t, civil(10, 0), filtered[1])
	assert.Equal(t, civil(10, 30), filtered[2])
}

func TestFilterLeadTime_StrictlyAfterBuffer(t *testing.T) {
	slots := GenerateSlots(window(9, 0, 12, 0))

	// Buffer at 09:20: 09:00 is gone, 09:30 is the first survivor.
	filtered := FilterLeadTime(slots, civil(9, 20))

	require.NotEmpty(t, filtered)
	assert.Equal(t, civil(9, 30), filtered[0])

	// A slot exactly at the buffer instant is not strictly after it.
	filtered = FilterLeadTime(GenerateSlots(window(9, 0, 12, 0)), civil(9, 30))
	assert.Equal(t, civil(10, 0), filtered[0])
}

func TestIntervalOverlaps(t *testing.T) {
	iv := Interval{Start: civil(10, 0), End: civil(11, 0)}

	assert.True(t, iv.Overlaps(civil(10, 30), civil(11, 0)))
	assert.True(t, iv.Overlaps(civil(9, 30), civil(10, 1)))
	assert.False(t, iv.Overlaps(civil(9, 30), civil(10, 0)), "touching edges do not overlap")
	assert.False(t, iv.Overlaps(civil(11, 0), civil(11, 30)), "touching edges do not overlap")
}
