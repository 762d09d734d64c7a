package gemini

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authctx "github.com/shift-agent/shift-agent/internal/auth"
	"github.com/shift-agent/shift-agent/internal/logging"
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

// aiTimeout bounds a single model round trip.
const aiTimeout = 2 * time.Minute

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) createShift(c *gin.Context) {
	var req createShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return
	}
	companyID, ok := authctx.ScopeCompany(c, req.CompanyID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), aiTimeout)
	defer cancel()

	shifts, err := h.svc.CreateShifts(ctx, companyID, req.FirstDay, req.LastDay, req.Comment)
	if err != nil {
		respondError(c, "gemini create shift", err)
		return
	}
	c.JSON(http.StatusOK, createShiftResp{EditShift: shifts})
}

func (h *Handler) evaluateShift(c *gin.Context) {
	var req evaluateShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return
	}
	companyID, ok := authctx.ScopeCompany(c, req.CompanyID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), aiTimeout)
	defer cancel()

	res, err := h.svc.Evaluate(ctx, companyID, req.FirstDay, req.LastDay)
	if err != nil {
		respondError(c, "gemini evaluate shift", err)
		return
	}
	c.JSON(http.StatusOK, evaluateShiftResp{
		EvaluationID:  res.Evaluation.EvaluationID,
		CompanyInfo:   res.Company,
		CompanyMember: res.Members,
		EvaluateDecisionShift: []evaluateDecisionShift{
			{CompanyID: companyID, DecisionShift: res.DecisionShift},
		},
		EditShiftID: res.EditShiftIDs,
		Comment:     res.Evaluation.Comment,
	})
}

func (h *Handler) latestEvaluation(c *gin.Context) {
	var requested int64
	if raw := c.Query("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "company_id must be a positive integer"})
			return
		}
		requested = id
	}
	companyID, ok := authctx.ScopeCompany(c, requested)
	if !ok {
		return
	}

	e, err := h.svc.LatestEvaluation(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, "latest evaluation", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, ErrNothingToEvaluate),
		errors.Is(err, ErrNoEvaluation):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"detail": "ai request timed out"})
	case errors.Is(err, ErrInvalidModelOutput):
		logging.FromContext(c.Request.Context()).Warn("unusable model output", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
	case errors.Is(err, ErrModelUnavailable):
		logging.FromContext(c.Request.Context()).Error("model unavailable", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": ErrModelUnavailable.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error("request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
