package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/mls/backend/internal/application/ledger"
)

// ExtraChargeHandler handles extra charge API endpoints
type ExtraChargeHandler struct {
	BaseHandler
	chargeService *ledgerapp.ExtraChargeService
}

// NewExtraChargeHandler creates a new ExtraChargeHandler
func NewExtraChargeHandler(chargeService *ledgerapp.ExtraChargeService) *ExtraChargeHandler {
	return &ExtraChargeHandler{chargeService: chargeService}
}

// RegisterRoutes registers extra charge routes
func (h *ExtraChargeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	charges := rg.Group("/extra-charges")
	{
		charges.POST("", h.Create)
		charges.GET("/by-tenant", h.ListByTenant)
		charges.GET("/:id", h.Get)
		charges.PUT("/:id", h.Update)
		charges.DELETE("/:id", h.Delete)
	}
}

// Create bills a one-off charge to a tenant
func (h *ExtraChargeHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateExtraChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charge, err := h.chargeService.CreateExtraCharge(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, charge)
}

// Get returns an extra charge by ID
func (h *ExtraChargeHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid extra charge ID")
		return
	}

	charge, err := h.chargeService.GetExtraChargeByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, charge)
}

// ListByTenant returns the extra charges billed to a tenant
func (h *ExtraChargeHandler) ListByTenant(c *gin.Context) {
	tenantID, err := uuidQuery(c, "tenant_id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	charges, err := h.chargeService.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, charges)
}

// Update corrects an extra charge
func (h *ExtraChargeHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid extra charge ID")
		return
	}

	var req ledgerapp.UpdateExtraChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charge, err := h.chargeService.UpdateExtraCharge(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, charge)
}

// Delete removes an extra charge
func (h *ExtraChargeHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid extra charge ID")
		return
	}

	if err := h.chargeService.DeleteExtraCharge(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
