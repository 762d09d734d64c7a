package http

import (
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
	"github.com/shift-agent/shift-agent/internal/scheduling/service"
)

type Handler struct {
	companies *service.CompanyService
	crew      *service.CrewService
	shifts    *service.ShiftService
}

func New(companies *service.CompanyService, crew *service.CrewService, shifts *service.ShiftService) *Handler {
	return &Handler{
		companies: companies,
		crew:      crew,
		shifts:    shifts,
	}
}

type companyInfoResponse struct {
	CompanyInfo  domain.Company `json:"company_info"`
	RestDay      []string       `json:"rest_day"`
	PositionName []string       `json:"position_name"`
}

type restDay struct {
	RestDay string `json:"rest_day"`
}

type position struct {
	PositionName string `json:"position_name"`
}

type companyInfoEditRequest struct {
	CompanyInfo domain.Company `json:"company_info"`
	RestDay     []restDay      `json:"rest_day"`
	Position    []position     `json:"position"`
}

type crewInfoResponse struct {
	CompanyMember []domain.CrewMember `json:"company_member"`
}

type crewCreateRequest struct {
	CompanyID int64  `json:"company_id"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	domain.CrewMember
}

type crewEditRequest struct {
	CompanyID int64 `json:"company_id"`
	domain.CrewMember
}

type memberRef struct {
	UserID    int64 `json:"user_id" binding:"required"`
	CompanyID int64 `json:"company_id"`
}

type submitShiftRequest struct {
	CompanyMemberInfo memberRef     `json:"company_member_info"`
	SubmitShift       []domain.Slot `json:"submit_shift"`
}

type submittedShiftResponse struct {
	SubmittedShift []domain.SubmittedShift `json:"submitted_shift"`
}

type editShiftResponse struct {
	CompanyMember []domain.MemberSummary `json:"company_member"`
	EditShift     []domain.EditShift     `json:"edit_shift"`
}

type editShiftID struct {
	EditShiftID int64 `json:"edit_shift_id"`
}

type editShiftRequest struct {
	CompanyID       int64              `json:"company_id"`
	AddEditShift    []domain.EditShift `json:"add_edit_shift"`
	UpdateEditShift []domain.EditShift `json:"update_edit_shift"`
	DeleteEditShift []editShiftID      `json:"delete_edit_shift"`
}

type editShiftResult struct {
	Message string `json:"message"`
	domain.DraftResult
}

type companyRequest struct {
	CompanyID int64 `json:"company_id"`
}

type completeResult struct {
	Message string `json:"message"`
	Decided int    `json:"decided"`
}

type decisionShiftResponse struct {
	DecisionShift []domain.DecisionShift `json:"decision_shift"`
	RestDay       []string               `json:"rest_day"`
}
