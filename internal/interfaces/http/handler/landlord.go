package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/mls/backend/internal/application/property"
)

// LandlordHandler handles landlord API endpoints
type LandlordHandler struct {
	BaseHandler
	landlordService *propertyapp.LandlordService
}

// NewLandlordHandler creates a new LandlordHandler
func NewLandlordHandler(landlordService *propertyapp.LandlordService) *LandlordHandler {
	return &LandlordHandler{landlordService: landlordService}
}

// RegisterRoutes registers landlord routes
func (h *LandlordHandler) RegisterRoutes(rg *gin.RouterGroup) {
	landlords := rg.Group("/landlords")
	{
		landlords.POST("", h.Create)
		landlords.GET("", h.List)
		landlords.GET("/:id", h.Get)
		landlords.PUT("/:id", h.Update)
		landlords.DELETE("/:id", h.Delete)
	}
}

// Create registers a new landlord
func (h *LandlordHandler) Create(c *gin.Context) {
	var req propertyapp.CreateLandlordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	landlord, err := h.landlordService.CreateLandlord(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, landlord)
}

// Get returns a landlord by ID
func (h *LandlordHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID")
		return
	}

	landlord, err := h.landlordService.GetLandlordByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, landlord)
}

// List returns landlords with pagination
func (h *LandlordHandler) List(c *gin.Context) {
	var filter propertyapp.LandlordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.landlordService.ListLandlords(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a landlord's contact and address details
func (h *LandlordHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID")
		return
	}

	var req propertyapp.UpdateLandlordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	landlord, err := h.landlordService.UpdateLandlord(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, landlord)
}

// Delete removes a landlord
func (h *LandlordHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID")
		return
	}

	if err := h.landlordService.DeleteLandlord(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
