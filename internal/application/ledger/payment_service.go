package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// PaymentService provides application-level payment operations
type PaymentService struct {
	paymentRepo ledger.PaymentRepository
	tenantRepo  tenancy.TenantRepository
	flatRepo    property.FlatRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo ledger.PaymentRepository,
	tenantRepo tenancy.TenantRepository,
	flatRepo property.FlatRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		flatRepo:    flatRepo,
	}
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	FlatID          uuid.UUID       `json:"flat_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	UtilitiesAmount decimal.Decimal `json:"utilities_amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	PaymentDate     time.Time       `json:"payment_date"`
	PaymentMonth    *string         `json:"payment_month,omitempty"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CreatePaymentRequest represents a request to record a payment.
// When the rent and utilities breakdown is omitted it defaults to the
// flat's configured amounts.
type CreatePaymentRequest struct {
	TenantID        uuid.UUID        `json:"tenant_id" binding:"required"`
	FlatID          uuid.UUID        `json:"flat_id" binding:"required"`
	Type            string           `json:"type" binding:"required"`
	AmountPaid      decimal.Decimal  `json:"amount_paid" binding:"required"`
	Amount          *decimal.Decimal `json:"amount"`
	UtilitiesAmount *decimal.Decimal `json:"utilities_amount"`
	PaymentDate     time.Time        `json:"payment_date"`
	PaymentMonth    string           `json:"payment_month" binding:"omitempty,month"`
	Notes           string           `json:"notes"`
}

// UpdatePaymentRequest represents a request to correct a recorded payment
type UpdatePaymentRequest struct {
	AmountPaid      decimal.Decimal `json:"amount_paid" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	UtilitiesAmount decimal.Decimal `json:"utilities_amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	PaymentMonth    string          `json:"payment_month" binding:"omitempty,month"`
	Notes           string          `json:"notes"`
}

// PaymentListFilter defines filtering options for payment list queries
type PaymentListFilter struct {
	TenantID *uuid.UUID `form:"tenant_id"`
	FlatID   *uuid.UUID `form:"flat_id"`
	Type     string     `form:"type"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
}

// CreatePayment records a payment received from a tenant. Several
// payments may settle the same month; duplicates are allowed.
func (s *PaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, req.TenantID); err != nil {
		return nil, err
	}
	flat, err := s.flatRepo.FindByID(ctx, req.FlatID)
	if err != nil {
		return nil, err
	}

	payment, err := ledger.NewPayment(
		req.TenantID,
		req.FlatID,
		ledger.PaymentType(req.Type),
		valueobject.NewMoneyEUR(req.AmountPaid),
		req.PaymentDate,
	)
	if err != nil {
		return nil, err
	}

	rent := flat.GetRentMoney()
	utilities := flat.GetUtilitiesMoney()
	if req.Amount != nil {
		rent = valueobject.NewMoneyEUR(*req.Amount)
	}
	if req.UtilitiesAmount != nil {
		utilities = valueobject.NewMoneyEUR(*req.UtilitiesAmount)
	}
	if err := payment.SetBreakdown(rent, utilities); err != nil {
		return nil, err
	}

	if req.PaymentMonth != "" {
		month, err := valueobject.ParseMonth(req.PaymentMonth)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_MONTH", "Payment month must be formatted as YYYY-MM")
		}
		payment.SetPaymentMonth(month)
	}
	payment.Notes = req.Notes

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// GetPaymentByID gets a payment by ID
func (s *PaymentService) GetPaymentByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// ListPayments lists payments with filtering and pagination
func (s *PaymentService) ListPayments(ctx context.Context, filter PaymentListFilter) (*shared.Paginated[PaymentResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.TenantID != nil {
		domainFilter.Filters["tenant_id"] = *filter.TenantID
	}
	if filter.FlatID != nil {
		domainFilter.Filters["flat_id"] = *filter.FlatID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = *toPaymentResponse(&p)
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// UpdatePayment corrects a recorded payment
func (s *PaymentService) UpdatePayment(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	amountPaid := valueobject.NewMoneyEUR(req.AmountPaid)
	if amountPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount paid cannot be negative")
	}
	payment.AmountPaid = amountPaid.Amount()

	if err := payment.SetBreakdown(
		valueobject.NewMoneyEUR(req.Amount),
		valueobject.NewMoneyEUR(req.UtilitiesAmount),
	); err != nil {
		return nil, err
	}

	if !req.PaymentDate.IsZero() {
		payment.PaymentDate = req.PaymentDate
	}
	if req.PaymentMonth != "" {
		month, err := valueobject.ParseMonth(req.PaymentMonth)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_MONTH", "Payment month must be formatted as YYYY-MM")
		}
		payment.SetPaymentMonth(month)
	}
	payment.Notes = req.Notes

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// DeletePayment removes a payment
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.paymentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.paymentRepo.Delete(ctx, id)
}

func toPaymentResponse(p *ledger.Payment) *PaymentResponse {
	var month *string
	if p.PaymentMonth != nil {
		m := p.PaymentMonth.String()
		month = &m
	}
	return &PaymentResponse{
		ID:              p.ID,
		TenantID:        p.TenantID,
		FlatID:          p.FlatID,
		Type:            p.Type.String(),
		Amount:          p.Amount,
		UtilitiesAmount: p.UtilitiesAmount,
		AmountPaid:      p.AmountPaid,
		PaymentDate:     p.PaymentDate,
		PaymentMonth:    month,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}
