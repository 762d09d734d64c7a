package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shift-agent/shift-agent/internal/client/apiclient"
	"github.com/shift-agent/shift-agent/internal/timefmt"
)

var (
	ErrInvalidTime  = errors.New("invalid time")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("invalid date range")
)

type ShiftService struct {
	client *apiclient.Client
}

func NewShiftService(client *apiclient.Client) *ShiftService {
	return &ShiftService{client: client}
}

// Submit sends availability for one member. Times accept HH:MM input.
func (s *ShiftService) Submit(ctx context.Context, member MemberRef, slots []ShiftSlot) error {
	normalized := make([]ShiftSlot, 0, len(slots))
	for _, slot := range slots {
		n, err := normalizeSlot(slot)
		if err != nil {
			return err
		}
		normalized = append(normalized, n)
	}

	req := SubmitShiftRequest{CompanyMemberInfo: member, SubmitShift: normalized}
	return s.client.Post(ctx, "/submitted-shift", req, nil)
}

// Submitted lists availability submitted for a company within [first, last].
func (s *ShiftService) Submitted(ctx context.Context, companyID int64, first, last string) ([]SubmittedShift, error) {
	q := companyQuery(companyID)
	if first != "" {
		q.Set("first_day", first)
	}
	if last != "" {
		q.Set("last_day", last)
	}

	var resp SubmittedShiftResponse
	if err := s.client.Get(ctx, "/submitted-shift", q, &resp); err != nil {
		return nil, err
	}
	return resp.SubmittedShift, nil
}

func (s *ShiftService) Drafts(ctx context.Context, companyID int64) (*EditShiftResponse, error) {
	var resp EditShiftResponse
	if err := s.client.Get(ctx, "/edit-shift", companyQuery(companyID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveDrafts applies deletes, updates and additions to the drafts as one
// change set.
func (s *ShiftService) SaveDrafts(ctx context.Context, changes EditShiftChanges) (*EditShiftResult, error) {
	for i := range changes.AddEditShift {
		if err := normalizeEditShift(&changes.AddEditShift[i]); err != nil {
			return nil, err
		}
		changes.AddEditShift[i].CompanyID = changes.CompanyID
	}
	for i := range changes.UpdateEditShift {
		if err := normalizeEditShift(&changes.UpdateEditShift[i]); err != nil {
			return nil, err
		}
		changes.UpdateEditShift[i].CompanyID = changes.CompanyID
	}

	var resp EditShiftResult
	if err := s.client.Post(ctx, "/edit-shift", changes, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Complete publishes future drafts as decided shifts.
func (s *ShiftService) Complete(ctx context.Context, companyID int64) (*CompleteResult, error) {
	var resp CompleteResult
	body := map[string]int64{"company_id": companyID}
	if err := s.client.Post(ctx, "/complete_edit_sift", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *ShiftService) Decided(ctx context.Context, companyID int64) (*DecisionShiftResponse, error) {
	var resp DecisionShiftResponse
	if err := s.client.Get(ctx, "/decision-shift", companyQuery(companyID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func normalizeSlot(slot ShiftSlot) (ShiftSlot, error) {
	day, err := timefmt.ParseISODate(slot.Day)
	if err != nil {
		return ShiftSlot{}, fmt.Errorf("%w: %q", ErrInvalidDate, slot.Day)
	}
	start := timefmt.FormatTimeToISO(slot.StartTime)
	if start == "" {
		return ShiftSlot{}, fmt.Errorf("%w: start %q", ErrInvalidTime, slot.StartTime)
	}
	finish := timefmt.FormatTimeToISO(slot.FinishTime)
	if finish == "" {
		return ShiftSlot{}, fmt.Errorf("%w: finish %q", ErrInvalidTime, slot.FinishTime)
	}
	if start == finish {
		return ShiftSlot{}, fmt.Errorf("%w: shift on %s has zero length", ErrInvalidTime, slot.Day)
	}
	return ShiftSlot{Day: timefmt.FormatDateToISO(day), StartTime: start, FinishTime: finish}, nil
}

func normalizeEditShift(e *EditShift) error {
	n, err := normalizeSlot(ShiftSlot{Day: e.Day, StartTime: e.StartTime, FinishTime: e.FinishTime})
	if err != nil {
		return err
	}
	e.Day, e.StartTime, e.FinishTime = n.Day, n.StartTime, n.FinishTime
	return nil
}
