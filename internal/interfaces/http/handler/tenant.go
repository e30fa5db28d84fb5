package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/mls/backend/internal/application/ledger"
	tenancyapp "github.com/mls/backend/internal/application/tenancy"
	"github.com/mls/backend/internal/domain/shared/valueobject"
)

// TenantHandler handles tenant API endpoints
type TenantHandler struct {
	BaseHandler
	tenantService  *tenancyapp.TenantService
	historyService *ledgerapp.HistoryService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(
	tenantService *tenancyapp.TenantService,
	historyService *ledgerapp.HistoryService,
) *TenantHandler {
	return &TenantHandler{
		tenantService:  tenantService,
		historyService: historyService,
	}
}

// RegisterRoutes registers tenant routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Create)
		tenants.GET("", h.List)
		tenants.GET("/available", h.ListAvailable)
		tenants.GET("/summary", h.Summaries)
		tenants.GET("/:id", h.Get)
		tenants.PUT("/:id", h.Update)
		tenants.DELETE("/:id", h.Delete)
		tenants.POST("/:id/assign-flat", h.AssignFlat)
		tenants.POST("/:id/end-tenancy", h.EndTenancy)
		tenants.GET("/:id/payment-history/:flatID", h.PaymentHistory)
	}
}

// Create registers a new prospective tenant
func (h *TenantHandler) Create(c *gin.Context) {
	var req tenancyapp.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, tenant)
}

// Get returns a tenant by ID
func (h *TenantHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.GetTenantByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tenant)
}

// List returns tenants with pagination
func (h *TenantHandler) List(c *gin.Context) {
	var filter tenancyapp.TenantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.tenantService.ListTenants(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListAvailable returns tenants not currently assigned to a flat
func (h *TenantHandler) ListAvailable(c *gin.Context) {
	tenants, err := h.tenantService.ListUnassignedTenants(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tenants)
}

// Summaries returns the dashboard overview for active tenants. The
// tenant_id query parameter restricts the result to one tenant; the
// month_year parameter selects the month checked for a sent
// missing-payment notice.
func (h *TenantHandler) Summaries(c *gin.Context) {
	var tenantID *uuid.UUID
	if raw := c.Query("tenant_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid tenant ID")
			return
		}
		tenantID = &parsed
	}

	var noticeMonth *valueobject.Month
	if raw := c.Query("month_year"); raw != "" {
		month, err := valueobject.ParseMonth(raw)
		if err != nil {
			h.BadRequest(c, "month_year must be formatted as YYYY-MM")
			return
		}
		noticeMonth = &month
	}

	summaries, err := h.historyService.TenantSummaries(c.Request.Context(), tenantID, noticeMonth)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summaries)
}

// Update updates a tenant's contact details and deposit
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req tenancyapp.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tenant)
}

// Delete removes a tenant
func (h *TenantHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.tenantService.DeleteTenant(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AssignFlat moves a tenant into a flat
func (h *TenantHandler) AssignFlat(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req tenancyapp.AssignFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.AssignFlat(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tenant)
}

// EndTenancy closes a tenant's active tenancy
func (h *TenantHandler) EndTenancy(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	// An empty body is fine; the end date then defaults to today
	var req tenancyapp.EndTenancyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.EndTenancy(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tenant)
}

// PaymentHistory returns the monthly payment projection for one
// tenancy, newest month first
func (h *TenantHandler) PaymentHistory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	flatID, err := parseIDParam(c, "flatID")
	if err != nil {
		h.BadRequest(c, "Invalid flat ID")
		return
	}

	rows, err := h.historyService.PaymentHistory(c.Request.Context(), id, flatID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, rows)
}
