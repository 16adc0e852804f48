package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/salutech-dev/medbook-api/internal/domain/appointment"
	availd "github.com/salutech-dev/medbook-api/internal/domain/availability"
	"github.com/salutech-dev/medbook-api/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Schedule resolution
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetActiveAffiliation(
	ctx context.Context,
	providerID uint,
) (*models.ClinicAffiliation, error) {

	var aff models.ClinicAffiliation
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND active = true", providerID).
		First(&aff).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &aff, nil
}

func (r *AvailabilityGormRepository) GetDefaultBranch(
	ctx context.Context,
	providerID uint,
) (*models.ProviderBranch, error) {

	var branch models.ProviderBranch
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("is_default DESC, id ASC").
		First(&branch).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *AvailabilityGormRepository) GetBranch(
	ctx context.Context,
	providerID uint,
	branchID uint,
) (*models.ProviderBranch, error) {

	var branch models.ProviderBranch
	err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", branchID, providerID).
		First(&branch).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *AvailabilityGormRepository) GetClinicSchedule(
	ctx context.Context,
	clinicID uint,
	dayOfWeek int,
) (*models.WeeklySchedule, error) {
	return r.getSchedule(ctx, models.ScheduleOwnerClinic, clinicID, dayOfWeek)
}

func (r *AvailabilityGormRepository) GetBranchSchedule(
	ctx context.Context,
	branchID uint,
	dayOfWeek int,
) (*models.WeeklySchedule, error) {
	return r.getSchedule(ctx, models.ScheduleOwnerBranch, branchID, dayOfWeek)
}

func (r *AvailabilityGormRepository) getSchedule(
	ctx context.Context,
	ownerType string,
	ownerID uint,
	dayOfWeek int,
) (*models.WeeklySchedule, error) {

	var entry models.WeeklySchedule
	err := r.db.WithContext(ctx).
		Where(
			"owner_type = ? AND owner_id = ? AND day_of_week = ?",
			ownerType, ownerID, dayOfWeek,
		).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// --------------------------------------------------
// Filters
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListBookedStarts(
	ctx context.Context,
	providerID uint,
	from time.Time,
	to time.Time,
) ([]time.Time, error) {

	var starts []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"provider_id = ? AND status NOT IN ? AND scheduled_for >= ? AND scheduled_for < ?",
			providerID, domain.TerminalStatuses(), from, to,
		).
		Order("scheduled_for ASC").
		Pluck("scheduled_for", &starts).Error; err != nil {
		return nil, err
	}

	return starts, nil
}

func (r *AvailabilityGormRepository) ListBlockedRanges(
	ctx context.Context,
	branchID uint,
	date string,
) ([]models.BlockedRange, error) {

	var blocks []models.BlockedRange
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND date = ?", branchID, date).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *AvailabilityGormRepository) ListApprovedDateBlocks(
	ctx context.Context,
	clinicID uint,
	doctorID uint,
	date string,
) ([]models.DateBlockRequest, error) {

	var reqs []models.DateBlockRequest
	if err := r.db.WithContext(ctx).
		Where(
			"clinic_id = ? AND doctor_id = ? AND date = ? AND status = ?",
			clinicID, doctorID, date, models.DateBlockApproved,
		).
		Find(&reqs).Error; err != nil {
		return nil, err
	}

	return reqs, nil
}

// Compile-time check
var _ availd.Repository = (*AvailabilityGormRepository)(nil)
