package gemini

import (
	"github.com/gin-gonic/gin"

	"github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/auth/middleware"
)

// RegisterRoutes mounts the AI endpoints on an authenticated group. All of
// them are owner-only.
func RegisterRoutes(rg gin.IRoutes, h *Handler) {
	owner := middleware.RequireRole(domain.RoleOwner)

	rg.POST("/gemini-create-shift", owner, h.createShift)
	rg.POST("/gemini-evaluate-shift", owner, h.evaluateShift)
	rg.GET("/gemini-evaluate-shift", owner, h.latestEvaluation)
}
