package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/salutech-dev/medbook-api/internal/domain/availability"
	"github.com/salutech-dev/medbook-api/internal/models"
	"github.com/salutech-dev/medbook-api/internal/timezone"
)

// fakeRepo serves canned rows and counts every call so tests can assert
// that some paths never touch the store.
type fakeRepo struct {
	affiliation    *models.ClinicAffiliation
	defaultBranch  *models.ProviderBranch
	ownedBranch    *models.ProviderBranch
	clinicSchedule *models.WeeklySchedule
	branchSchedule *models.WeeklySchedule
	booked         []time.Time
	blockedRanges  []models.BlockedRange
	dateBlocks     []models.DateBlockRequest

	calls  int
	failOn string
}

func (f *fakeRepo) check(method string) error {
	f.calls++
	if f.failOn == method {
		return errors.New("store down")
	}
	return nil
}

func (f *fakeRepo) GetActiveAffiliation(_ context.Context, _ uint) (*models.ClinicAffiliation, error) {
	if err := f.check("GetActiveAffiliation"); err != nil {
		return nil, err
	}
	return f.affiliation, nil
}

func (f *fakeRepo) GetDefaultBranch(_ context.Context, _ uint) (*models.ProviderBranch, error) {
	if err := f.check("GetDefaultBranch"); err != nil {
		return nil, err
	}
	return f.defaultBranch, nil
}

func (f *fakeRepo) GetBranch(_ context.Context, providerID, branchID uint) (*models.ProviderBranch, error) {
	if err := f.check("GetBranch"); err != nil {
		return nil, err
	}
	if f.ownedBranch != nil && f.ownedBranch.ID == branchID && f.ownedBranch.ProviderID == providerID {
		return f.ownedBranch, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetClinicSchedule(_ context.Context, _ uint, _ int) (*models.WeeklySchedule, error) {
	if err := f.check("GetClinicSchedule"); err != nil {
		return nil, err
	}
	return f.clinicSchedule, nil
}

func (f *fakeRepo) GetBranchSchedule(_ context.Context, _ uint, _ int) (*models.WeeklySchedule, error) {
	if err := f.check("GetBranchSchedule"); err != nil {
		return nil, err
	}
	return f.branchSchedule, nil
}

func (f *fakeRepo) ListBookedStarts(_ context.Context, _ uint, _, _ time.Time) ([]time.Time, error) {
	if err := f.check("ListBookedStarts"); err != nil {
		return nil, err
	}
	return f.booked, nil
}

func (f *fakeRepo) ListBlockedRanges(_ context.Context, _ uint, _ string) ([]models.BlockedRange, error) {
	if err := f.check("ListBlockedRanges"); err != nil {
		return nil, err
	}
	return f.blockedRanges, nil
}

func (f *fakeRepo) ListApprovedDateBlocks(_ context.Context, _, _ uint, _ string) ([]models.DateBlockRequest, error) {
	if err := f.check("ListApprovedDateBlocks"); err != nil {
		return nil, err
	}
	return f.dateBlocks, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// 2026-08-28 is a Friday; 2026-09-03 is a Thursday.
var (
	testNow    = time.Date(2026, 8, 28, 10, 0, 0, 0, timezone.Civil)
	futureDate = time.Date(2026, 9, 3, 0, 0, 0, 0, timezone.Civil)
)

func workingDay() *models.WeeklySchedule {
	return &models.WeeklySchedule{
		Enabled:    true,
		StartTime:  "09:00",
		EndTime:    "17:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	}
}

func newUC(repo *fakeRepo, now time.Time) *GetAvailability {
	return NewGetAvailability(repo, fixedClock{now: now}, zap.NewNop())
}

func TestExecute_IndependentProviderFullDay(t *testing.T) {
	repo := &fakeRepo{
		defaultBranch:  &models.ProviderBranch{ID: 7},
		branchSchedule: workingDay(),
	}
	uc := newUC(repo, testNow)

	res, err := uc.Execute(context.Background(), Input{ProviderID: 1, Date: futureDate})

	require.NoError(t, err)
	assert.Equal(t, "2026-09-03", res.Date)
	assert.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	}, res.AvailableSlots)
}

func TestExecute_BookedSlotsAreDropped(t *testing.T) {
	repo := &fakeRepo{
		defaultBranch:  &models.ProviderBranch{ID: 7},
		branchSchedule: workingDay(),
		booked: []time.Time{
			time.Date(2026, 9, 3, 10, 0, 0, 0, timezone.Civil),
			time.Date(2026, 9, 3, 14, 30, 0, 0, timezone.Civil),
		},
	}
	uc := newUC(repo, testNow)

	res, err := uc.Execute(context.Background(), Input{ProviderID: 1, Date: futureDate})

	require.NoError(t, err)
	assert.NotContains(t, res.AvailableSlots, "10:00")
	assert.NotContains(t, res.AvailableSlots, "14:30")
	assert.Len(t, res.AvailableSlots, 12)
}

func TestExecute_PastDateIsEmptyWithoutStoreReads(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUC(repo, testNow)

	res, err := uc.Execute(context.Background(), Input{
		ProviderID: 1,
		Date:       time.Date(2026, 8, 27, 0, 0, 0, 0, timezone.Civil),
	})

	require.NoError(t, err)
	assert.Empty(t, res.AvailableSlots)
	assert.Equal(t, 0, repo.calls, "past dates must not hit the store")
}

func TestExecute_TodayAppliesLeadTime(t *testing.T) {
	// Today 08:50: the 09:00 slot is inside the buffer, 09:30 is the
	// first offer.
	now := time.Date(2026, 8, 28, 8, 50, 0, 0, timezone.Civil)
	repo := &fakeRepo{
		defaultBranch:  &models.ProviderBranch{ID: 7},
		branchSchedule: workingDay(),
	}
	uc := newUC(repo, now)

	res, err := uc.Execute(context.Background(), Input{
		ProviderID: 1,
		Date:       timezone.DateOf(now),
	})

	require.NoError(t, err)
	require.NotEmpty(t, res.AvailableSlots)
	assert.Equal(t, "09:30", res.AvailableSlots[0])
	assert.NotContains(t, res.AvailableSlots, "09:00")
}

func TestExecute_ClinicAffiliationIsExclusive(t *testing.T) {
	// The doctor's own branch has a perfectly good template, but while the
	// clinic affiliation is active only the clinic template counts. With no
	// clinic entry for the day, availability is empty — no fallback.
	repo := &fakeRepo{
		affiliation:    &models.ClinicAffiliation{ClinicID: 3, DoctorID: 5, Active: true},
		clinicSchedule: nil,
		defaultBranch:  &models.ProviderBranch{ID: 7},
		branchSchedule: workingDay(),
	}
	uc := newUC(repo, testNow)

	res, err := uc.Execute(context.Background(), Input{ProviderID: 5, Date: futureDate})

	require.NoError(t, err)
	assert.Empty(t, res.AvailableSlots)
}

func TestExecute_ClinicScheduleApplies(t *testing.T) {
	repo := &fakeRepo{
		affiliation: &models.ClinicAffiliation{ClinicID: 3, DoctorID: 5, Active: true},
		clinicSchedule: &models.WeeklySchedule{
			Enabled:   true,
			StartTime: "08:00",
			EndTime:   "10:00",
		},
	}
	uc := newUC(repo, testNow)

	res, err := uc.Execute(context.Background(), Input{ProviderID: 5, Date: futureDate})

	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, res.AvailableSlots)
}

func TestExecute_ApprovedFullDayBlockEmptiesDay(t *testing.T) {
	repo := &fakeRepo{
		affiliation:    &models.ClinicAffiliation{ClinicID: 3, DoctorID: 5, Active: true},
		clinicSchedule: workingDay(),
		dateBlocks: []models.DateBlockRequest{
			{Date: "2026-09-03", Status: models.DateBlockApproved},
		},
	}
	uc := newUC(repo, testNow)

	res, err := uc.Execute(context.Background(), Input{ProviderID: 5, Date: futureDate})

	require.NoError(t, err)
	assert.Empty(t, res.AvailableSlots)
}

func TestExecute_ApprovedPartialBlocksNarrow(t *testing.T) {
	repo := &fakeRepo{
		affiliation:    &models.ClinicAffiliation{ClinicID: 3, DoctorID: 5, Active: true},
		clinicSchedule: workingDay(),
		dateBlocks: []models.DateBlockRequest{
			{Date: "2026-09-03", Status: models.DateBlockApproved, StartTime: "09:00", EndTime: "11:00"},
		},
	}
	uc := newUC(repo, testNow)

	res, err := uc.Execute(context.Background(), Input{ProviderID: 5, Date: futureDate})

	require.NoError(t, err)
	assert.NotContains(t, res.AvailableSlots, "09:00")
	assert.NotContains(t, res.AvailableSlots, "10:30")
	assert.Contains(t, res.AvailableSlots, "11:00")
}

func TestExecute_BlockedRangeNarrowsIndependent(t *testing.T) {
	repo := &fakeRepo{
		defaultBranch:  &models.ProviderBranch{ID: 7},
		branchSchedule: workingDay(),
		blockedRanges: []models.BlockedRange{
			{BranchID: 7, Date: "2026-09-03", StartTime: "15:00", EndTime: "16:00"},
		},
	}
	uc := newUC(repo, testNow)

	res, err := uc.Execute(context.Background(), Input{ProviderID: 1, Date: futureDate})

	require.NoError(t, err)
	assert.NotContains(t, res.AvailableSlots, "15:00")
	assert.NotContains(t, res.AvailableSlots, "15:30")
	assert.Contains(t, res.AvailableSlots, "16:00")
}

func TestExecute_NoDefaultBranchMeansNoAvailability(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUC(repo, testNow)

	res, err := uc.Execute(context.Background(), Input{ProviderID: 1, Date: futureDate})

	require.NoError(t, err)
	assert.Empty(t, res.AvailableSlots)
}

func TestExecute_StoreFailureIsAnError(t *testing.T) {
	for _, method := range []string{
		"GetActiveAffiliation",
		"GetBranchSchedule",
		"ListBookedStarts",
		"ListBlockedRanges",
	} {
		t.Run(method, func(t *testing.T) {
			repo := &fakeRepo{
				defaultBranch:  &models.ProviderBranch{ID: 7},
				branchSchedule: workingDay(),
				failOn:         method,
			}
			uc := newUC(repo, testNow)

			res, err := uc.Execute(context.Background(), Input{ProviderID: 1, Date: futureDate})

			require.Error(t, err)
			assert.Nil(t, res, "a failure never yields a partial list")
		})
	}
}

func TestResolveSource_ExplicitBranchSkipsDefaultLookup(t *testing.T) {
	repo := &fakeRepo{
		ownedBranch:    &models.ProviderBranch{ID: 9, ProviderID: 1},
		branchSchedule: workingDay(),
	}
	uc := newUC(repo, testNow)

	src, err := uc.ResolveSource(context.Background(), Input{
		ProviderID: 1,
		BranchID:   9,
		Date:       futureDate,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SourceIndependent, src.Kind)
	assert.Equal(t, uint(9), src.BranchID)
	// GetActiveAffiliation + GetBranch + GetBranchSchedule, nothing else.
	assert.Equal(t, 3, repo.calls)
}

func TestResolveSource_ForeignBranchIsRejected(t *testing.T) {
	// Branch 9 belongs to provider 2; asking for provider 1's slots through
	// it must not read another provider's template.
	repo := &fakeRepo{
		ownedBranch:    &models.ProviderBranch{ID: 9, ProviderID: 2},
		branchSchedule: workingDay(),
	}
	uc := newUC(repo, testNow)

	src, err := uc.ResolveSource(context.Background(), Input{
		ProviderID: 1,
		BranchID:   9,
		Date:       futureDate,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SourceNone, src.Kind)

	res, err := uc.Execute(context.Background(), Input{
		ProviderID: 1,
		BranchID:   9,
		Date:       futureDate,
	})
	require.NoError(t, err)
	assert.Empty(t, res.AvailableSlots)
}
