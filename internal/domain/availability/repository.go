package availability

import (
	"context"
	"time"

	"github.com/salutech-dev/medbook-api/internal/models"
)

// Repository is the read side the engine consumes. Every method is a plain
// snapshot read; lookups that find nothing return (nil, nil) rather than an
// error so "not configured" stays distinguishable from a store failure.
type Repository interface {
	// -------- Schedule resolution --------
	GetActiveAffiliation(
		ctx context.Context,
		providerID uint,
	) (*models.ClinicAffiliation, error)

	GetDefaultBranch(
		ctx context.Context,
		providerID uint,
	) (*models.ProviderBranch, error)

	// GetBranch resolves a branch scoped by its owner; a branch id that
	// belongs to another provider is (nil, nil).
	GetBranch(
		ctx context.Context,
		providerID uint,
		branchID uint,
	) (*models.ProviderBranch, error)

	GetClinicSchedule(
		ctx context.Context,
		clinicID uint,
		dayOfWeek int,
	) (*models.WeeklySchedule, error)

	GetBranchSchedule(
		ctx context.Context,
		branchID uint,
		dayOfWeek int,
	) (*models.WeeklySchedule, error)

	// -------- Filters --------

	// ListBookedStarts returns the start instants of the provider's
	// non-terminal appointments inside [from, to).
	ListBookedStarts(
		ctx context.Context,
		providerID uint,
		from time.Time,
		to time.Time,
	) ([]time.Time, error)

	ListBlockedRanges(
		ctx context.Context,
		branchID uint,
		date string,
	) ([]models.BlockedRange, error)

	ListApprovedDateBlocks(
		ctx context.Context,
		clinicID uint,
		doctorID uint,
		date string,
	) ([]models.DateBlockRequest, error)
}
