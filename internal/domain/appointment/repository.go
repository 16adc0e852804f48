package appointment

import (
	"context"
	"time"

	"github.com/salutech-dev/medbook-api/internal/models"
)

type Repository interface {
	// -------- Provider --------
	GetProviderByID(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	// -------- Patient --------
	GetOrCreatePatient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Patient, error)

	// -------- Appointment (create / reserve) --------

	// CreateReserved inserts the appointment inside one transaction that
	// first locks and re-checks the slot; the availability read path is
	// advisory, this is the authoritative reservation.
	CreateReserved(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForProvider(
		ctx context.Context,
		appointmentID uint,
		providerID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
