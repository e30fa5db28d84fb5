package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	ledgerapp "github.com/mls/backend/internal/application/ledger"
)

// ExpenseHandler handles landlord expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *ledgerapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *ledgerapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// RegisterRoutes registers landlord expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/landlord-expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("/by-flat/:flatID", h.ListByFlat)
		expenses.GET("/:id", h.Get)
		expenses.POST("/:id/receipt", h.AttachReceipt)
		expenses.DELETE("/:id", h.Delete)
	}
}

// Create records a cost paid by the landlord for a flat
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, expense)
}

// Get returns a landlord expense by ID
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// ListByFlat returns a flat's expenses. When the year query parameter
// is set the result is the yearly total with its expense lines.
func (h *ExpenseHandler) ListByFlat(c *gin.Context) {
	flatID, err := parseIDParam(c, "flatID")
	if err != nil {
		h.BadRequest(c, "Invalid flat ID")
		return
	}

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return
		}
		summary, err := h.expenseService.YearlyExpenses(c.Request.Context(), flatID, year)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, summary)
		return
	}

	expenses, err := h.expenseService.ListByFlat(c.Request.Context(), flatID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expenses)
}

// AttachReceiptRequest carries the object key of a scanned receipt
type AttachReceiptRequest struct {
	ReceiptKey string `json:"receipt_key" binding:"required"`
}

// AttachReceipt stores the object key of a scanned receipt
func (h *ExpenseHandler) AttachReceipt(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req AttachReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.AttachReceipt(c.Request.Context(), id, req.ReceiptKey)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, expense)
}

// Delete removes a landlord expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
