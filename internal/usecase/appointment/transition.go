package appointment

import (
	"context"

	"github.com/salutech-dev/medbook-api/internal/audit"
	domain "github.com/salutech-dev/medbook-api/internal/domain/appointment"
	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/models"
	"github.com/salutech-dev/medbook-api/internal/timezone"
)

// TransitionAppointment drives the provider-side status changes: confirm,
// reject, cancel, complete. The state rules live in the domain package;
// this usecase only loads, applies and persists.
type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		audit: auditor,
	}
}

type Transition string

const (
	TransitionConfirm  Transition = "confirm"
	TransitionReject   Transition = "reject"
	TransitionCancel   Transition = "cancel"
	TransitionComplete Transition = "complete"
)

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	providerID uint,
	appointmentID uint,
	transition Transition,
	requestID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProvider(ctx, appointmentID, providerID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.Now()

	switch transition {
	case TransitionConfirm:
		err = domain.Confirm(ap)
	case TransitionReject:
		err = domain.Reject(ap, now)
	case TransitionCancel:
		err = domain.Cancel(ap, now)
	case TransitionComplete:
		err = domain.Complete(ap, now)
	default:
		return nil, httperr.ErrBusiness("invalid_transition")
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &providerID,
		Action:    "appointment_" + string(ap.Status),
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: requestID,
	})

	return ap, nil
}
