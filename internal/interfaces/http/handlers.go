package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/condoops/bank-reconciliation/internal/application/service"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	matchingService       service.MatchingService
	reconciliationService service.ReconciliationService
	reportService         service.ReportService
	logger                Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	matchingService service.MatchingService,
	reconciliationService service.ReconciliationService,
	reportService service.ReportService,
	logger Logger,
) *Handlers {
	return &Handlers{
		matchingService:       matchingService,
		reconciliationService: reconciliationService,
		reportService:         reportService,
		logger:                logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ApplyMatchRequest represents the body of POST /api/reconciliation/apply
type ApplyMatchRequest struct {
	DepositID   int64  `json:"deposit_id" binding:"required"`
	VoucherID   int64  `json:"voucher_id" binding:"required"`
	HouseNumber int    `json:"house_number" binding:"required"`
	UserID      int64  `json:"user_id" binding:"required"`
	AdminNotes  string `json:"admin_notes"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// FindMatchSuggestions handles GET /api/reconciliation/suggestions
func (h *Handlers) FindMatchSuggestions(c *gin.Context) {
	result, err := h.matchingService.FindMatchSuggestions(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to find match suggestions", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to find match suggestions",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// ApplyMatchSuggestion handles POST /api/reconciliation/apply
func (h *Handlers) ApplyMatchSuggestion(c *gin.Context) {
	var req ApplyMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid apply request", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	result, err := h.reconciliationService.ApplyMatchSuggestion(c.Request.Context(), service.ApplyMatchInput{
		DepositID:   req.DepositID,
		VoucherID:   req.VoucherID,
		HouseNumber: req.HouseNumber,
		UserID:      req.UserID,
		AdminNotes:  req.AdminNotes,
	})
	if err != nil {
		h.logger.Error("Failed to apply match suggestion",
			"deposit_id", req.DepositID, "voucher_id", req.VoucherID, "error", err)
		c.JSON(statusFor(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// ExportSuggestions handles GET /api/reconciliation/suggestions/export
func (h *Handlers) ExportSuggestions(c *gin.Context) {
	workbook, err := h.reportService.ExportSuggestions(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to export suggestions", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to export suggestions",
		})
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("match-suggestions-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if _, err := workbook.WriteTo(c.Writer); err != nil {
		h.logger.Error("Failed to write workbook", "error", err)
	}
}

// statusFor maps the service failure taxonomy to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrHouseNumberOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDepositNotFound),
		errors.Is(err, service.ErrDepositNotUnclaimed),
		errors.Is(err, service.ErrVoucherNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrVoucherAlreadyConfirmed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
