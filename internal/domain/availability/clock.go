package availability

import (
	"time"

	"github.com/salutech-dev/medbook-api/internal/timezone"
)

// Clock supplies "now" in civil time. Injected so the lead-time and
// past-date rules are deterministic under test.
type Clock interface {
	Now() time.Time
}

type civilClock struct{}

func (civilClock) Now() time.Time {
	return timezone.Now()
}

func SystemClock() Clock {
	return civilClock{}
}
