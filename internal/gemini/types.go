package gemini

import "github.com/shift-agent/shift-agent/internal/scheduling/domain"

type createShiftReq struct {
	CompanyID int64  `json:"company_id"`
	FirstDay  string `json:"first_day" binding:"required"`
	LastDay   string `json:"last_day" binding:"required"`
	Comment   string `json:"comment"`
}

type createShiftResp struct {
	EditShift []domain.EditShift `json:"edit_shift"`
}

type evaluateShiftReq struct {
	CompanyID int64  `json:"company_id"`
	FirstDay  string `json:"first_day" binding:"required"`
	LastDay   string `json:"last_day" binding:"required"`
}

type evaluateDecisionShift struct {
	CompanyID     int64                  `json:"company_id"`
	DecisionShift []domain.DecisionShift `json:"decision_shift"`
}

type evaluateShiftResp struct {
	EvaluationID          int64                   `json:"evaluation_id"`
	CompanyInfo           domain.Company          `json:"company_info"`
	CompanyMember         []domain.CrewMember     `json:"company_member"`
	EvaluateDecisionShift []evaluateDecisionShift `json:"evaluate_decision_shift"`
	EditShiftID           []int64                 `json:"edit_shift_id"`
	Comment               string                  `json:"comment"`
}
