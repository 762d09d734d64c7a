package domain

import "time"

// Slot is one shift window. Day is YYYY-MM-DD; times are HH:MM:SS. A finish
// earlier than the start ends on the following day.
type Slot struct {
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	FinishTime string `json:"finish_time"`
}

// SubmittedShift is availability submitted by a crew member.
type SubmittedShift struct {
	SubmittedShiftID int64  `json:"submitted_shift_id"`
	UserID           int64  `json:"user_id"`
	CompanyID        int64  `json:"company_id"`
	Day              string `json:"day"`
	StartTime        string `json:"start_time"`
	FinishTime       string `json:"finish_time"`
}

// EditShift is a draft assignment the owner is still adjusting.
type EditShift struct {
	EditShiftID int64  `json:"edit_shift_id"`
	UserID      int64  `json:"user_id"`
	CompanyID   int64  `json:"company_id"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	FinishTime  string `json:"finish_time"`
}

func (e EditShift) Slot() Slot {
	return Slot{Day: e.Day, StartTime: e.StartTime, FinishTime: e.FinishTime}
}

// DecisionShift is a confirmed assignment, joined with the member's profile
// for display.
type DecisionShift struct {
	DecisionShiftID int64  `json:"decision_shift_id"`
	UserID          int64  `json:"user_id"`
	CompanyID       int64  `json:"company_id,omitempty"`
	Name            string `json:"name,omitempty"`
	Position        string `json:"position,omitempty"`
	Post            string `json:"post,omitempty"`
	Day             string `json:"day"`
	StartTime       string `json:"start_time"`
	FinishTime      string `json:"finish_time"`
}

// MemberSummary is the slice of a profile shown next to drafts.
type MemberSummary struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Evaluate int    `json:"evaluate"`
	HourPay  int64  `json:"hour_pay"`
	Post     string `json:"post"`
}

// DraftChanges is one save of the draft editor, applied atomically.
type DraftChanges struct {
	Add    []EditShift
	Update []EditShift
	Delete []int64
}

type DraftResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Skipped int `json:"skipped"`
}

// Evaluation is a stored AI review of the decision shifts in a date range.
type Evaluation struct {
	EvaluationID int64     `json:"evaluation_id"`
	CompanyID    int64     `json:"company_id"`
	StartDay     string    `json:"start_day"`
	FinishDay    string    `json:"finish_day"`
	Comment      string    `json:"comment"`
	Flagged      []int64   `json:"flagged"`
	CreatedAt    time.Time `json:"created_at"`
}
