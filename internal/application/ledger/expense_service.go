package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseService provides application-level landlord expense operations
type ExpenseService struct {
	expenseRepo ledger.ExpenseRepository
	flatRepo    property.FlatRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo ledger.ExpenseRepository, flatRepo property.FlatRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		flatRepo:    flatRepo,
	}
}

// ExpenseResponse represents a landlord expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	FlatID        uuid.UUID       `json:"flat_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	ReferenceYear int             `json:"reference_year"`
	Description   string          `json:"description"`
	ReceiptKey    string          `json:"receipt_key,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// CreateExpenseRequest represents a request to record a landlord expense
type CreateExpenseRequest struct {
	FlatID        uuid.UUID       `json:"flat_id" binding:"required"`
	Type          string          `json:"type" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate   time.Time       `json:"payment_date" binding:"required"`
	ReferenceYear int             `json:"reference_year" binding:"required"`
	Description   string          `json:"description"`
}

// YearlyExpensesResponse aggregates a flat's expenses for one tax year
type YearlyExpensesResponse struct {
	FlatID        uuid.UUID         `json:"flat_id"`
	ReferenceYear int               `json:"reference_year"`
	Total         decimal.Decimal   `json:"total"`
	Expenses      []ExpenseResponse `json:"expenses"`
}

// CreateExpense records a cost paid by the landlord for a flat
func (s *ExpenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if _, err := s.flatRepo.FindByID(ctx, req.FlatID); err != nil {
		return nil, err
	}

	expense, err := ledger.NewLandlordExpense(
		req.FlatID,
		ledger.LandlordExpenseType(req.Type),
		valueobject.NewMoneyEUR(req.Amount),
		req.PaymentDate,
		req.ReferenceYear,
	)
	if err != nil {
		return nil, err
	}
	expense.Description = req.Description

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetExpenseByID gets a landlord expense by ID
func (s *ExpenseService) GetExpenseByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListByFlat lists a flat's expenses, newest first
func (s *ExpenseService) ListByFlat(ctx context.Context, flatID uuid.UUID) ([]ExpenseResponse, error) {
	if _, err := s.flatRepo.FindByID(ctx, flatID); err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.FindByFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}
	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = *toExpenseResponse(&e)
	}
	return responses, nil
}

// YearlyExpenses totals a flat's expenses for one tax year
func (s *ExpenseService) YearlyExpenses(ctx context.Context, flatID uuid.UUID, year int) (*YearlyExpensesResponse, error) {
	if _, err := s.flatRepo.FindByID(ctx, flatID); err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.FindByFlatAndYear(ctx, flatID, year)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = *toExpenseResponse(&e)
	}

	return &YearlyExpensesResponse{
		FlatID:        flatID,
		ReferenceYear: year,
		Total:         ledger.SumExpenses(expenses),
		Expenses:      responses,
	}, nil
}

// AttachReceipt stores the object key of a scanned receipt
func (s *ExpenseService) AttachReceipt(ctx context.Context, id uuid.UUID, receiptKey string) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	expense.AttachReceipt(receiptKey)
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense removes a landlord expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}

func toExpenseResponse(e *ledger.LandlordExpense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		FlatID:        e.FlatID,
		Type:          e.Type.String(),
		Amount:        e.Amount,
		PaymentDate:   e.PaymentDate,
		ReferenceYear: e.ReferenceYear,
		Description:   e.Description,
		ReceiptKey:    e.ReceiptKey,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		Version:       e.Version,
	}
}
