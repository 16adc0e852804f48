package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/salutech-dev/medbook-api/internal/domain/availability"
	"github.com/salutech-dev/medbook-api/internal/timezone"
)

// GetAvailability computes the bookable slots for one provider on one civil
// date: resolve schedule source → generate grid → drop booked slots → drop
// blocked slots → apply lead time. Every stage only narrows the set.
type GetAvailability struct {
	repo  domain.Repository
	clock domain.Clock
	log   *zap.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	clock domain.Clock,
	log *zap.Logger,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

type Input struct {
	ProviderID uint

	// BranchID selects an independent provider's branch; zero means the
	// provider's default branch. Ignored for clinic-affiliated providers.
	BranchID uint

	// Date is a civil date (midnight in the fixed zone).
	Date time.Time
}

type Result struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in Input,
) (*Result, error) {

	dateStr := in.Date.Format(timezone.DateLayout)
	res := &Result{Date: dateStr, AvailableSlots: []string{}}

	now := uc.clock.Now()
	today := timezone.DateOf(now)

	// Past dates are empty by definition; answered before any store read.
	if in.Date.Before(today) {
		return res, nil
	}

	src, err := uc.ResolveSource(ctx, in)
	if err != nil {
		return nil, uc.fail(err, in, "resolve schedule")
	}
	if src.Kind == domain.SourceNone {
		return res, nil
	}

	slots := domain.GenerateSlots(src.Window)
	if len(slots) == 0 {
		return res, nil
	}

	occupied, err := uc.repo.ListBookedStarts(
		ctx,
		in.ProviderID,
		src.Window.Start,
		src.Window.End,
	)
	if err != nil {
		return nil, uc.fail(err, in, "list booked slots")
	}
	slots = domain.FilterConflicts(slots, occupied)

	slots, fullDay, err := uc.applyBlocks(ctx, src, in.Date, dateStr, slots)
	if err != nil {
		return nil, uc.fail(err, in, "list blocks")
	}
	if fullDay {
		return res, nil
	}

	if in.Date.Equal(today) {
		buffer := now.Add(domain.LeadTimeMinutes * time.Minute)
		slots = domain.FilterLeadTime(slots, buffer)
	}

	for _, s := range slots {
		res.AvailableSlots = append(res.AvailableSlots, timezone.FormatClock(s))
	}
	return res, nil
}

// ResolveSource decides which weekly template governs the date. An active
// clinic affiliation wins exclusively: a disabled or missing clinic entry
// means no availability, never a fallback to the provider's own template.
func (uc *GetAvailability) ResolveSource(
	ctx context.Context,
	in Input,
) (domain.Source, error) {

	dayOfWeek := timezone.DayOfWeek(in.Date)

	aff, err := uc.repo.GetActiveAffiliation(ctx, in.ProviderID)
	if err != nil {
		return domain.Source{}, err
	}

	if aff != nil {
		entry, err := uc.repo.GetClinicSchedule(ctx, aff.ClinicID, dayOfWeek)
		if err != nil {
			return domain.Source{}, err
		}

		window, ok := domain.ResolveWindow(entry, in.Date)
		if !ok {
			return domain.Source{Kind: domain.SourceNone}, nil
		}

		return domain.Source{
			Kind:     domain.SourceClinic,
			ClinicID: aff.ClinicID,
			DoctorID: aff.DoctorID,
			Window:   window,
		}, nil
	}

	branchID := in.BranchID
	if branchID == 0 {
		branch, err := uc.repo.GetDefaultBranch(ctx, in.ProviderID)
		if err != nil {
			return domain.Source{}, err
		}
		if branch == nil {
			return domain.Source{Kind: domain.SourceNone}, nil
		}
		branchID = branch.ID
	} else {
		// Caller-supplied branch ids are only honored when the branch
		// belongs to the provider; otherwise the slots would come from
		// another provider's template.
		branch, err := uc.repo.GetBranch(ctx, in.ProviderID, branchID)
		if err != nil {
			return domain.Source{}, err
		}
		if branch == nil {
			return domain.Source{Kind: domain.SourceNone}, nil
		}
	}

	entry, err := uc.repo.GetBranchSchedule(ctx, branchID, dayOfWeek)
	if err != nil {
		return domain.Source{}, err
	}

	window, ok := domain.ResolveWindow(entry, in.Date)
	if !ok {
		return domain.Source{Kind: domain.SourceNone}, nil
	}

	return domain.Source{
		Kind:     domain.SourceIndependent,
		BranchID: branchID,
		Window:   window,
	}, nil
}

// applyBlocks narrows slots by ad hoc unavailability. For clinic doctors an
// approved request without times empties the whole day, reported via
// fullDay so the orchestrator can stop explicitly.
func (uc *GetAvailability) applyBlocks(
	ctx context.Context,
	src domain.Source,
	date time.Time,
	dateStr string,
	slots []time.Time,
) ([]time.Time, bool, error) {

	switch src.Kind {

	case domain.SourceClinic:
		reqs, err := uc.repo.ListApprovedDateBlocks(ctx, src.ClinicID, src.DoctorID, dateStr)
		if err != nil {
			return nil, false, err
		}

		var blocks []domain.Interval
		for _, rq := range reqs {
			if rq.FullDay() {
				return nil, true, nil
			}
			if iv, ok := blockInterval(src.Window, date, rq.StartTime, rq.EndTime); ok {
				blocks = append(blocks, iv)
			}
		}
		return domain.FilterBlocked(slots, blocks), false, nil

	case domain.SourceIndependent:
		ranges, err := uc.repo.ListBlockedRanges(ctx, src.BranchID, dateStr)
		if err != nil {
			return nil, false, err
		}

		var blocks []domain.Interval
		for _, br := range ranges {
			if iv, ok := blockInterval(src.Window, date, br.StartTime, br.EndTime); ok {
				blocks = append(blocks, iv)
			}
		}
		return domain.FilterBlocked(slots, blocks), false, nil
	}

	return slots, false, nil
}

// blockInterval anchors a partial block to the date. A missing edge extends
// to the matching window edge.
func blockInterval(
	w domain.DayWindow,
	date time.Time,
	startHM string,
	endHM string,
) (domain.Interval, bool) {

	start := w.Start
	if startHM != "" {
		t, ok := timezone.AtClock(date, startHM)
		if !ok {
			return domain.Interval{}, false
		}
		start = t
	}

	end := w.End
	if endHM != "" {
		t, ok := timezone.AtClock(date, endHM)
		if !ok {
			return domain.Interval{}, false
		}
		end = t
	}

	if !start.Before(end) {
		return domain.Interval{}, false
	}
	return domain.Interval{Start: start, End: end}, true
}

func (uc *GetAvailability) fail(err error, in Input, stage string) error {
	uc.log.Error("availability computation failed",
		zap.Uint("provider_id", in.ProviderID),
		zap.String("date", in.Date.Format(timezone.DateLayout)),
		zap.String("stage", stage),
		zap.Error(err),
	)
	return err
}
