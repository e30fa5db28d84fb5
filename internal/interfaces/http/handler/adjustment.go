package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/mls/backend/internal/application/ledger"
)

// AdjustmentHandler handles utilities adjustment API endpoints
type AdjustmentHandler struct {
	BaseHandler
	adjustmentService *ledgerapp.AdjustmentService
	historyService    *ledgerapp.HistoryService
}

// NewAdjustmentHandler creates a new AdjustmentHandler
func NewAdjustmentHandler(
	adjustmentService *ledgerapp.AdjustmentService,
	historyService *ledgerapp.HistoryService,
) *AdjustmentHandler {
	return &AdjustmentHandler{
		adjustmentService: adjustmentService,
		historyService:    historyService,
	}
}

// RegisterRoutes registers utilities adjustment routes
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	adjustments := rg.Group("/utilities-adjustments")
	{
		adjustments.POST("", h.Create)
		adjustments.GET("", h.List)
		adjustments.GET("/by-flat/:flatID", h.ListByFlat)
		adjustments.GET("/by-year", h.ListByYear)
		adjustments.GET("/:id", h.Get)
		adjustments.PUT("/:id", h.Update)
		adjustments.POST("/:id/mark-paid", h.MarkPaid)
		adjustments.DELETE("/:id", h.Delete)
	}
}

// Create creates the yearly adjustment for a flat and tenant
func (h *AdjustmentHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	adjustment, err := h.adjustmentService.CreateAdjustment(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, adjustment)
}

// Get returns an adjustment with its computed balance
func (h *AdjustmentHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID")
		return
	}

	adjustment, err := h.adjustmentService.GetAdjustmentByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, adjustment)
}

// List returns the enriched adjustment rows, optionally restricted to
// one flat or one reference year.
func (h *AdjustmentHandler) List(c *gin.Context) {
	var flatID *uuid.UUID
	if raw := c.Query("flat_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid flat ID")
			return
		}
		flatID = &id
	}
	var year *int
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return
		}
		year = &y
	}

	rows, err := h.historyService.AdjustmentRows(c.Request.Context(), flatID, year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// ListByFlat returns the enriched adjustment rows for a flat. The
// tenant query parameter restricts rows to one tenant.
func (h *AdjustmentHandler) ListByFlat(c *gin.Context) {
	flatID, err := parseIDParam(c, "flatID")
	if err != nil {
		h.BadRequest(c, "Invalid flat ID")
		return
	}

	rows, err := h.historyService.AdjustmentRows(c.Request.Context(), &flatID, nil)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if raw := c.Query("tenant"); raw != "" {
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid tenant ID")
			return
		}
		filtered := make([]ledgerapp.AdjustmentRow, 0, len(rows))
		for _, row := range rows {
			if row.TenantID == tenantID {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	h.Success(c, rows)
}

// ListByYear returns the enriched adjustment rows for one reference year
func (h *AdjustmentHandler) ListByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	rows, err := h.historyService.AdjustmentRows(c.Request.Context(), nil, &year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// Update replaces the charge lines of an adjustment
func (h *AdjustmentHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID")
		return
	}

	var req ledgerapp.UpdateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	adjustment, err := h.adjustmentService.UpdateAdjustment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, adjustment)
}

// MarkPaid records settlement of an adjustment
func (h *AdjustmentHandler) MarkPaid(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID")
		return
	}

	// Body is optional; an empty one settles with today's date
	var req ledgerapp.MarkAdjustmentPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err.Error())
		return
	}

	adjustment, err := h.adjustmentService.MarkPaid(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, adjustment)
}

// Delete removes an adjustment
func (h *AdjustmentHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID")
		return
	}

	if err := h.adjustmentService.DeleteAdjustment(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
