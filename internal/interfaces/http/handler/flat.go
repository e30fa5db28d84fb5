package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/mls/backend/internal/application/ledger"
	propertyapp "github.com/mls/backend/internal/application/property"
)

// FlatHandler handles flat API endpoints
type FlatHandler struct {
	BaseHandler
	flatService    *propertyapp.FlatService
	paymentService *ledgerapp.PaymentService
	historyService *ledgerapp.HistoryService
}

// NewFlatHandler creates a new FlatHandler
func NewFlatHandler(
	flatService *propertyapp.FlatService,
	paymentService *ledgerapp.PaymentService,
	historyService *ledgerapp.HistoryService,
) *FlatHandler {
	return &FlatHandler{
		flatService:    flatService,
		paymentService: paymentService,
		historyService: historyService,
	}
}

// RegisterRoutes registers flat routes
func (h *FlatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	flats := rg.Group("/flats")
	{
		flats.POST("", h.Create)
		flats.GET("", h.List)
		flats.GET("/available", h.ListAvailable)
		flats.GET("/:id", h.Get)
		flats.PUT("/:id", h.Update)
		flats.DELETE("/:id", h.Delete)
		flats.GET("/:id/payments", h.ListPayments)
		flats.GET("/:id/summary", h.Summary)
		flats.GET("/:id/yearly-utilities/:year", h.YearlyUtilities)
	}
}

// Create registers a new flat
func (h *FlatHandler) Create(c *gin.Context) {
	var req propertyapp.CreateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	flat, err := h.flatService.CreateFlat(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, flat)
}

// Get returns a flat by ID
func (h *FlatHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid flat ID")
		return
	}

	flat, err := h.flatService.GetFlatByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, flat)
}

// List returns flats with pagination
func (h *FlatHandler) List(c *gin.Context) {
	var filter propertyapp.FlatListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.flatService.ListFlats(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListAvailable returns flats with no active tenant
func (h *FlatHandler) ListAvailable(c *gin.Context) {
	flats, err := h.flatService.ListAvailableFlats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, flats)
}

// Update updates a flat
func (h *FlatHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid flat ID")
		return
	}

	var req propertyapp.UpdateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	flat, err := h.flatService.UpdateFlat(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, flat)
}

// Delete removes a flat
func (h *FlatHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid flat ID")
		return
	}

	if err := h.flatService.DeleteFlat(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPayments returns the payments recorded for a flat
func (h *FlatHandler) ListPayments(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid flat ID")
		return
	}

	var filter ledgerapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.FlatID = &id

	page, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Summary returns the per-flat overview with reconciliation rows
func (h *FlatHandler) Summary(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid flat ID")
		return
	}

	summary, err := h.historyService.FlatSummary(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// YearlyUtilities returns the utilities paid for a flat over one year,
// optionally restricted to a tenant via the tenant query parameter
func (h *FlatHandler) YearlyUtilities(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid flat ID")
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	var tenantID *uuid.UUID
	if raw := c.Query("tenant"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid tenant ID")
			return
		}
		tenantID = &parsed
	}

	paid, err := h.historyService.YearlyUtilitiesPaid(c.Request.Context(), id, year, tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{
		"flat_id":        id,
		"reference_year": year,
		"utilities_paid": paid,
	})
}
