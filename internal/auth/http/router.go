package http

import "github.com/gin-gonic/gin"

// RegisterPublic mounts the unauthenticated endpoints.
func (h *Handler) RegisterPublic(rg gin.IRoutes) {
	rg.POST("/login", h.Login)
	rg.POST("/signin", h.SignIn)
	rg.POST("/logout", h.Logout)
}

func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET("/me", h.Me)
}
