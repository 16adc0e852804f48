package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	all := []Status{
		StatusPending, StatusConfirmed, StatusCompleted,
		StatusCancelled, StatusRejected, StatusDeleted,
	}

	allowed := map[string]map[Status]bool{
		"confirm":  {StatusPending: true},
		"reject":   {StatusPending: true},
		"cancel":   {StatusPending: true, StatusConfirmed: true},
		"complete": {StatusConfirmed: true},
	}

	checks := map[string]func(Status) error{
		"confirm":  CanConfirm,
		"reject":   CanReject,
		"cancel":   CanCancel,
		"complete": CanComplete,
	}

	for name, check := range checks {
		for _, from := range all {
			err := check(from)
			if allowed[name][from] {
				assert.NoError(t, err, "%s from %s", name, from)
			} else {
				assert.Error(t, err, "%s from %s", name, from)
			}
		}
	}
}

func TestTerminalStatusesFreeTheSlot(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"cancelled", "rejected", "deleted"},
		TerminalStatuses(),
	)
}
