package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/models"
)

func TestTransition_ConfirmPending(t *testing.T) {
	repo := &fakeApptRepo{
		stored: &models.Appointment{ID: 9, ProviderID: 1, Status: "pending"},
	}
	uc := NewTransitionAppointment(repo, testDispatcher(t))

	ap, err := uc.Execute(context.Background(), 1, 9, TransitionConfirm, "req-1")

	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "confirmed", repo.updated.Status)
}

func TestTransition_CancelConfirmedSetsTimestamp(t *testing.T) {
	repo := &fakeApptRepo{
		stored: &models.Appointment{ID: 9, ProviderID: 1, Status: "confirmed"},
	}
	uc := NewTransitionAppointment(repo, testDispatcher(t))

	ap, err := uc.Execute(context.Background(), 1, 9, TransitionCancel, "req-2")

	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
	assert.NotNil(t, ap.CancelledAt)
}

func TestTransition_InvalidState(t *testing.T) {
	repo := &fakeApptRepo{
		stored: &models.Appointment{ID: 9, ProviderID: 1, Status: "completed"},
	}
	uc := NewTransitionAppointment(repo, testDispatcher(t))

	_, err := uc.Execute(context.Background(), 1, 9, TransitionCancel, "req-3")

	require.Error(t, err)
	code, ok := httperr.AnyBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_state", code)
	assert.Nil(t, repo.updated)
}

func TestTransition_UnknownAppointment(t *testing.T) {
	uc := NewTransitionAppointment(&fakeApptRepo{}, testDispatcher(t))

	_, err := uc.Execute(context.Background(), 1, 404, TransitionConfirm, "req-4")

	require.Error(t, err)
	code, ok := httperr.AnyBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "appointment_not_found", code)
}
