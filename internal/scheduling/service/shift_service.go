package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
	"github.com/shift-agent/shift-agent/internal/timefmt"
)

type ShiftStore interface {
	InsertSubmitted(ctx context.Context, userID, companyID int64, slots []domain.Slot) (int, error)
	ListSubmitted(ctx context.Context, companyID int64, first, last string) ([]domain.SubmittedShift, error)
	ListDrafts(ctx context.Context, companyID int64, first, last string) ([]domain.EditShift, error)
	ApplyDrafts(ctx context.Context, companyID int64, changes domain.DraftChanges) (domain.DraftResult, error)
	ReplaceDrafts(ctx context.Context, companyID int64, first, last string, shifts []domain.EditShift) ([]domain.EditShift, error)
	CompleteDrafts(ctx context.Context, companyID int64, day string) (int, error)
	ListDecided(ctx context.Context, companyID int64, first, last string) ([]domain.DecisionShift, error)
	PurgeDraftsBefore(ctx context.Context, day string) (int64, error)
}

type Option func(*ShiftService)

// WithClock overrides time.Now, which decides what counts as a past day.
func WithClock(now func() time.Time) Option {
	return func(s *ShiftService) { s.now = now }
}

type ShiftService struct {
	shifts    ShiftStore
	crew      CrewStore
	companies CompanyStore
	now       func() time.Time
}

func NewShiftService(shifts ShiftStore, crew CrewStore, companies CompanyStore, opts ...Option) *ShiftService {
	s := &ShiftService{
		shifts:    shifts,
		crew:      crew,
		companies: companies,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current local date as YYYY-MM-DD.
func (s *ShiftService) Today() string {
	return timefmt.FormatDateToISO(s.now())
}

// Submit stores availability for a member and returns how many new slots were
// recorded.
func (s *ShiftService) Submit(ctx context.Context, userID, companyID int64, slots []domain.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, fmt.Errorf("%w: no shifts submitted", domain.ErrInvalidShift)
	}
	normalized := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		n, err := domain.NormalizeSlot(slot)
		if err != nil {
			return 0, err
		}
		normalized = append(normalized, n)
	}
	if err := s.checkMembers(ctx, companyID, []int64{userID}); err != nil {
		return 0, err
	}
	return s.shifts.InsertSubmitted(ctx, userID, companyID, normalized)
}

func (s *ShiftService) Submitted(ctx context.Context, companyID int64, first, last string) ([]domain.SubmittedShift, error) {
	if err := checkOptionalRange(first, last); err != nil {
		return nil, err
	}
	return s.shifts.ListSubmitted(ctx, companyID, first, last)
}

// Drafts returns the company's members and all of its drafts.
func (s *ShiftService) Drafts(ctx context.Context, companyID int64) ([]domain.MemberSummary, []domain.EditShift, error) {
	members, err := s.crew.Summaries(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	drafts, err := s.shifts.ListDrafts(ctx, companyID, "", "")
	if err != nil {
		return nil, nil, err
	}
	return members, drafts, nil
}

// SaveDrafts validates and applies one save of the draft editor. Additions
// dated before today are skipped and counted in DraftResult.Skipped.
func (s *ShiftService) SaveDrafts(ctx context.Context, companyID int64, changes domain.DraftChanges) (domain.DraftResult, error) {
	today := s.Today()
	var users []int64

	for i := range changes.Update {
		if err := domain.NormalizeEditShift(&changes.Update[i]); err != nil {
			return domain.DraftResult{}, err
		}
		users = append(users, changes.Update[i].UserID)
	}

	adds := make([]domain.EditShift, 0, len(changes.Add))
	skipped := 0
	for _, e := range changes.Add {
		if err := domain.NormalizeEditShift(&e); err != nil {
			return domain.DraftResult{}, err
		}
		if e.Day < today {
			skipped++
			continue
		}
		adds = append(adds, e)
		users = append(users, e.UserID)
	}
	changes.Add = adds

	if err := s.checkMembers(ctx, companyID, users); err != nil {
		return domain.DraftResult{}, err
	}

	res, err := s.shifts.ApplyDrafts(ctx, companyID, changes)
	if err != nil {
		return domain.DraftResult{}, err
	}
	res.Skipped = skipped
	return res, nil
}

// ReplaceDrafts swaps every draft in [first, last] for shifts.
func (s *ShiftService) ReplaceDrafts(ctx context.Context, companyID int64, first, last string, shifts []domain.EditShift) ([]domain.EditShift, error) {
	if _, _, err := domain.ParseRange(first, last); err != nil {
		return nil, err
	}
	return s.shifts.ReplaceDrafts(ctx, companyID, first, last, shifts)
}

// Complete confirms every draft dated after today.
func (s *ShiftService) Complete(ctx context.Context, companyID int64) (int, error) {
	return s.shifts.CompleteDrafts(ctx, companyID, s.Today())
}

// Decided returns confirmed shifts and the rest days in the same range.
func (s *ShiftService) Decided(ctx context.Context, companyID int64, first, last string) ([]domain.DecisionShift, []string, error) {
	if err := checkOptionalRange(first, last); err != nil {
		return nil, nil, err
	}
	shifts, err := s.shifts.ListDecided(ctx, companyID, first, last)
	if err != nil {
		return nil, nil, err
	}
	restDays, err := s.companies.RestDays(ctx, companyID, first, last)
	if err != nil {
		return nil, nil, err
	}
	return shifts, restDays, nil
}

// PurgeStaleDrafts deletes drafts of every company dated before today.
func (s *ShiftService) PurgeStaleDrafts(ctx context.Context) (int64, error) {
	return s.shifts.PurgeDraftsBefore(ctx, s.Today())
}

func (s *ShiftService) checkMembers(ctx context.Context, companyID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	members, err := s.crew.MemberIDs(ctx, companyID, userIDs)
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		if !members[id] {
			return fmt.Errorf("%w: user_id %d", domain.ErrNotCompanyMember, id)
		}
	}
	return nil
}

func checkOptionalRange(first, last string) error {
	switch {
	case first != "" && last != "":
		_, _, err := domain.ParseRange(first, last)
		return err
	case first != "":
		_, _, err := domain.ParseRange(first, first)
		return err
	case last != "":
		_, _, err := domain.ParseRange(last, last)
		return err
	}
	return nil
}
