package handler

import (
	"github.com/gin-gonic/gin"
	tenancyapp "github.com/mls/backend/internal/application/tenancy"
	"github.com/mls/backend/internal/domain/shared/valueobject"
)

// CommunicationHandler handles tenant communication API endpoints
type CommunicationHandler struct {
	BaseHandler
	commService *tenancyapp.CommunicationService
}

// NewCommunicationHandler creates a new CommunicationHandler
func NewCommunicationHandler(commService *tenancyapp.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{commService: commService}
}

// RegisterRoutes registers communication routes
func (h *CommunicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	comms := rg.Group("/communications")
	{
		comms.POST("", h.Create)
		comms.GET("/by-tenant", h.ListByTenant)
		comms.GET("/by-month/:tenantID/:monthYear", h.ListByMonth)
	}
	rg.POST("/send-email", h.SendEmail)
}

// Create records a document sent to a tenant
func (h *CommunicationHandler) Create(c *gin.Context) {
	var req tenancyapp.RecordCommunicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	comm, err := h.commService.RecordCommunication(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, comm)
}

// ListByTenant returns the communications sent to a tenant
func (h *CommunicationHandler) ListByTenant(c *gin.Context) {
	tenantID, err := uuidQuery(c, "tenant_id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	comms, err := h.commService.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, comms)
}

// ListByMonth returns the communications sent to a tenant for one
// reference month
func (h *CommunicationHandler) ListByMonth(c *gin.Context) {
	tenantID, err := parseIDParam(c, "tenantID")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	month, err := valueobject.ParseMonth(c.Param("monthYear"))
	if err != nil {
		h.BadRequest(c, "Month must be formatted as YYYY-MM")
		return
	}

	comms, err := h.commService.ListByTenantAndMonth(c.Request.Context(), tenantID, month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, comms)
}

// SendEmail delivers an email to a tenant and records it
func (h *CommunicationHandler) SendEmail(c *gin.Context) {
	var req tenancyapp.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	comm, err := h.commService.SendEmail(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, comm)
}
