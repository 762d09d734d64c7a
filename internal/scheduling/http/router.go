package http

import (
	"github.com/gin-gonic/gin"

	"github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/auth/middleware"
)

// Register mounts the scheduling endpoints. rg must already run the Firebase
// auth middleware.
func (h *Handler) Register(rg gin.IRoutes) {
	owner := middleware.RequireRole(domain.RoleOwner)

	rg.GET("/company-info", h.GetCompanyInfo)
	rg.POST("/company-info", owner, h.EditCompanyInfo)
	rg.POST("/company-info-edit", owner, h.EditCompanyInfo)

	rg.GET("/crew-info", h.ListCrew)
	rg.POST("/crew-info", owner, h.CreateCrew)
	rg.POST("/crew-info-edit", owner, h.EditCrew)

	rg.POST("/submitted-shift", h.SubmitShift)
	rg.GET("/submitted-shift", owner, h.ListSubmitted)

	rg.GET("/edit-shift", owner, h.GetDrafts)
	rg.POST("/edit-shift", owner, h.SaveDrafts)
	rg.POST("/complete_edit_sift", owner, h.CompleteDrafts)

	rg.GET("/decision-shift", h.GetDecided)
}
