package appointment

import (
	"context"
	"time"

	domain "github.com/salutech-dev/medbook-api/internal/domain/appointment"
	"github.com/salutech-dev/medbook-api/internal/dto"
	"github.com/salutech-dev/medbook-api/internal/timezone"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// ByDate lists the provider's appointments for one civil date.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	providerID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start := timezone.DateOf(date)
	end := start.Add(24 * time.Hour)

	return uc.list(ctx, providerID, start, end)
}

// ByMonth lists the provider's appointments for one calendar month.
func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	providerID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, timezone.Civil)
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, providerID, start, end)
}

func (uc *ListAppointments) list(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		providerID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			Reference:    ap.Reference,
			ScheduledFor: ap.ScheduledFor,
			DurationMin:  ap.DurationMin,
			Status:       ap.Status,
			PatientName:  ap.Patient.Name,
		})
	}

	return out, nil
}
