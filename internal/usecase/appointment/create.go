package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salutech-dev/medbook-api/internal/audit"
	domain "github.com/salutech-dev/medbook-api/internal/domain/appointment"
	availd "github.com/salutech-dev/medbook-api/internal/domain/availability"
	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/models"
	"github.com/salutech-dev/medbook-api/internal/timezone"
	ucavail "github.com/salutech-dev/medbook-api/internal/usecase/availability"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProviderID uint
	BranchID   uint

	PatientName  string
	PatientPhone string
	PatientEmail string

	Date  string
	Time  string
	Notes string

	RequestID string
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment books a slot. The offered-slot check runs against the
// same engine the read path uses; the final reservation is re-checked under
// a row lock inside the repository transaction.
type CreateAppointment struct {
	repo         domain.Repository
	availability *ucavail.GetAvailability
	audit        *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	availability *ucavail.GetAvailability,
	auditor *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:         repo,
		availability: availability,
		audit:        auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if _, err := uc.repo.GetProviderByID(ctx, in.ProviderID); err != nil {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	start, ok := timezone.AtClock(date, in.Time)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	availIn := ucavail.Input{
		ProviderID: in.ProviderID,
		BranchID:   in.BranchID,
		Date:       date,
	}

	// The requested time must be one of the currently offered slots; that
	// covers the template window, break, blocks, lead time and past dates
	// in one pass.
	offer, err := uc.availability.Execute(ctx, availIn)
	if err != nil {
		return nil, err
	}

	offered := false
	for _, hm := range offer.AvailableSlots {
		if hm == in.Time {
			offered = true
			break
		}
	}
	if !offered {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	src, err := uc.availability.ResolveSource(ctx, availIn)
	if err != nil {
		return nil, err
	}

	patient, err := uc.repo.GetOrCreatePatient(
		ctx,
		in.PatientName,
		in.PatientPhone,
		in.PatientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		Reference:    uuid.NewString(),
		ProviderID:   in.ProviderID,
		PatientID:    patient.ID,
		ScheduledFor: start,
		DurationMin:  availd.SlotMinutes,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	switch src.Kind {
	case availd.SourceClinic:
		clinicID := src.ClinicID
		ap.ClinicID = &clinicID
	case availd.SourceIndependent:
		branchID := src.BranchID
		ap.BranchID = &branchID
	}

	if err := uc.repo.CreateReserved(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: in.RequestID,
		Metadata: map[string]any{
			"provider_id":   in.ProviderID,
			"scheduled_for": start.Format(time.RFC3339),
		},
	})

	return ap, nil
}
