package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/mls/backend/internal/application/property"
)

// ManagerHandler handles building manager API endpoints
type ManagerHandler struct {
	BaseHandler
	managerService *propertyapp.ManagerService
}

// NewManagerHandler creates a new ManagerHandler
func NewManagerHandler(managerService *propertyapp.ManagerService) *ManagerHandler {
	return &ManagerHandler{managerService: managerService}
}

// RegisterRoutes registers building manager routes
func (h *ManagerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	managers := rg.Group("/managers")
	{
		managers.POST("", h.Create)
		managers.GET("", h.List)
		managers.GET("/:id", h.Get)
		managers.PUT("/:id", h.Update)
		managers.DELETE("/:id", h.Delete)
	}
}

// Create registers a new building manager
func (h *ManagerHandler) Create(c *gin.Context) {
	var req propertyapp.CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	manager, err := h.managerService.CreateManager(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, manager)
}

// Get returns a building manager by ID
func (h *ManagerHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manager ID")
		return
	}

	manager, err := h.managerService.GetManagerByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, manager)
}

// List returns building managers with pagination
func (h *ManagerHandler) List(c *gin.Context) {
	var filter propertyapp.ManagerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.managerService.ListManagers(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a building manager
func (h *ManagerHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manager ID")
		return
	}

	var req propertyapp.UpdateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	manager, err := h.managerService.UpdateManager(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, manager)
}

// Delete removes a building manager
func (h *ManagerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manager ID")
		return
	}

	if err := h.managerService.DeleteManager(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
