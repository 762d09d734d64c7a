package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authctx "github.com/shift-agent/shift-agent/internal/auth"
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

func (h *Handler) ListCrew(c *gin.Context) {
	companyID, ok := queryCompany(c)
	if !ok {
		return
	}

	members, err := h.crew.List(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, "list crew", err)
		return
	}
	c.JSON(http.StatusOK, crewInfoResponse{CompanyMember: members})
}

// CreateCrew registers a crew login and profile in the owner's company.
func (h *Handler) CreateCrew(c *gin.Context) {
	var req crewCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	companyID, ok := authctx.ScopeCompany(c, req.CompanyID)
	if !ok {
		return
	}

	created, err := h.crew.Create(c.Request.Context(), companyID, domain.NewCrew{
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.CrewMember,
	})
	if err != nil {
		respondError(c, "create crew", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) EditCrew(c *gin.Context) {
	var req crewEditRequest
	if !bindJSON(c, &req) {
		return
	}
	companyID, ok := authctx.ScopeCompany(c, req.CompanyID)
	if !ok {
		return
	}
	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "user_id is required"})
		return
	}

	m := req.CrewMember
	m.CompanyID = companyID
	if err := h.crew.Update(c.Request.Context(), &m); err != nil {
		respondError(c, "edit crew", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "crew info updated"})
}
