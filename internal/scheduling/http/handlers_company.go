package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authctx "github.com/shift-agent/shift-agent/internal/auth"
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

// GetCompanyInfo returns the store profile, rest days and position names.
func (h *Handler) GetCompanyInfo(c *gin.Context) {
	companyID, ok := queryCompany(c)
	if !ok {
		return
	}

	p, err := h.companies.Get(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, "get company info", err)
		return
	}

	c.JSON(http.StatusOK, companyInfoResponse{
		CompanyInfo:  p.Company,
		RestDay:      p.RestDays,
		PositionName: p.Positions,
	})
}

// EditCompanyInfo replaces the store profile, rest days and positions.
func (h *Handler) EditCompanyInfo(c *gin.Context) {
	var req companyInfoEditRequest
	if !bindJSON(c, &req) {
		return
	}
	companyID, ok := authctx.ScopeCompany(c, req.CompanyInfo.CompanyID)
	if !ok {
		return
	}

	p := &domain.CompanyProfile{Company: req.CompanyInfo}
	p.Company.CompanyID = companyID
	for _, d := range req.RestDay {
		p.RestDays = append(p.RestDays, d.RestDay)
	}
	for _, pos := range req.Position {
		p.Positions = append(p.Positions, pos.PositionName)
	}

	if err := h.companies.Update(c.Request.Context(), p); err != nil {
		respondError(c, "edit company info", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "company info updated"})
}
