package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	authctx "github.com/shift-agent/shift-agent/internal/auth"
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

// SubmitShift stores availability. Crew may only submit for themselves.
func (h *Handler) SubmitShift(c *gin.Context) {
	var req submitShiftRequest
	if !bindJSON(c, &req) {
		return
	}
	companyID, ok := authctx.ScopeCompany(c, req.CompanyMemberInfo.CompanyID)
	if !ok {
		return
	}
	p := authctx.PrincipalFrom(c)
	if !p.IsOwner() && p.UserID != req.CompanyMemberInfo.UserID {
		c.JSON(http.StatusForbidden, gin.H{"detail": "crew can only submit their own shifts"})
		return
	}

	n, err := h.shifts.Submit(c.Request.Context(), req.CompanyMemberInfo.UserID, companyID, req.SubmitShift)
	if err != nil {
		respondError(c, "submit shift", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("%d shifts submitted", n), "submitted": n})
}

func (h *Handler) ListSubmitted(c *gin.Context) {
	companyID, ok := queryCompany(c)
	if !ok {
		return
	}

	shifts, err := h.shifts.Submitted(c.Request.Context(), companyID, c.Query("first_day"), c.Query("last_day"))
	if err != nil {
		respondError(c, "list submitted shifts", err)
		return
	}
	c.JSON(http.StatusOK, submittedShiftResponse{SubmittedShift: shifts})
}

func (h *Handler) GetDrafts(c *gin.Context) {
	companyID, ok := queryCompany(c)
	if !ok {
		return
	}

	members, drafts, err := h.shifts.Drafts(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, "get drafts", err)
		return
	}
	c.JSON(http.StatusOK, editShiftResponse{CompanyMember: members, EditShift: drafts})
}

// SaveDrafts applies deletes, updates and additions of the draft editor.
func (h *Handler) SaveDrafts(c *gin.Context) {
	var req editShiftRequest
	if !bindJSON(c, &req) {
		return
	}
	companyID, ok := authctx.ScopeCompany(c, req.CompanyID)
	if !ok {
		return
	}

	changes := domain.DraftChanges{Add: req.AddEditShift, Update: req.UpdateEditShift}
	for _, d := range req.DeleteEditShift {
		changes.Delete = append(changes.Delete, d.EditShiftID)
	}

	res, err := h.shifts.SaveDrafts(c.Request.Context(), companyID, changes)
	if err != nil {
		respondError(c, "save drafts", err)
		return
	}
	c.JSON(http.StatusOK, editShiftResult{Message: "edit shift saved", DraftResult: res})
}

// CompleteDrafts confirms every future draft as a decision shift.
func (h *Handler) CompleteDrafts(c *gin.Context) {
	var req companyRequest
	if !bindJSON(c, &req) {
		return
	}
	companyID, ok := authctx.ScopeCompany(c, req.CompanyID)
	if !ok {
		return
	}

	n, err := h.shifts.Complete(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, "complete drafts", err)
		return
	}
	c.JSON(http.StatusOK, completeResult{Message: fmt.Sprintf("%d shifts decided", n), Decided: n})
}

func (h *Handler) GetDecided(c *gin.Context) {
	companyID, ok := queryCompany(c)
	if !ok {
		return
	}

	shifts, restDays, err := h.shifts.Decided(c.Request.Context(), companyID, c.Query("first_day"), c.Query("last_day"))
	if err != nil {
		respondError(c, "get decision shifts", err)
		return
	}
	c.JSON(http.StatusOK, decisionShiftResponse{DecisionShift: shifts, RestDay: restDays})
}
