package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// AdjustmentService provides application-level utilities adjustment
// operations, including the yearly reconciliation balance.
type AdjustmentService struct {
	adjustmentRepo ledger.AdjustmentRepository
	paymentRepo    ledger.PaymentRepository
	tenantRepo     tenancy.TenantRepository
	flatRepo       property.FlatRepository
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(
	adjustmentRepo ledger.AdjustmentRepository,
	paymentRepo ledger.PaymentRepository,
	tenantRepo tenancy.TenantRepository,
	flatRepo property.FlatRepository,
) *AdjustmentService {
	return &AdjustmentService{
		adjustmentRepo: adjustmentRepo,
		paymentRepo:    paymentRepo,
		tenantRepo:     tenantRepo,
		flatRepo:       flatRepo,
	}
}

// AdjustmentResponse represents a utilities adjustment in API responses.
// Balance is utilities paid over the reference year minus total charges;
// positive means the tenant overpaid.
type AdjustmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	FlatID         uuid.UUID       `json:"flat_id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	ReferenceYear  int             `json:"reference_year"`
	ReferenceMonth *string         `json:"reference_month,omitempty"`
	LiftAmount     decimal.Decimal `json:"lift_amount"`
	HeatingAmount  decimal.Decimal `json:"heating_amount"`
	OtherAmount    decimal.Decimal `json:"other_amount"`
	TotalCharges   decimal.Decimal `json:"total_charges"`
	UtilitiesPaid  decimal.Decimal `json:"utilities_paid"`
	Balance        decimal.Decimal `json:"balance"`
	IsPaid         bool            `json:"is_paid"`
	PaymentDate    *time.Time      `json:"payment_date,omitempty"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// CreateAdjustmentRequest represents a request to create an adjustment
type CreateAdjustmentRequest struct {
	FlatID         uuid.UUID       `json:"flat_id" binding:"required"`
	TenantID       uuid.UUID       `json:"tenant_id" binding:"required"`
	ReferenceYear  int             `json:"reference_year" binding:"required"`
	ReferenceMonth string          `json:"reference_month" binding:"omitempty,month"`
	LiftAmount     decimal.Decimal `json:"lift_amount"`
	HeatingAmount  decimal.Decimal `json:"heating_amount"`
	OtherAmount    decimal.Decimal `json:"other_amount"`
	Notes          string          `json:"notes"`
}

// UpdateAdjustmentRequest represents a request to update an adjustment
type UpdateAdjustmentRequest struct {
	ReferenceMonth string          `json:"reference_month" binding:"omitempty,month"`
	LiftAmount     decimal.Decimal `json:"lift_amount"`
	HeatingAmount  decimal.Decimal `json:"heating_amount"`
	OtherAmount    decimal.Decimal `json:"other_amount"`
	Notes          string          `json:"notes"`
}

// MarkAdjustmentPaidRequest represents a request to settle an adjustment
type MarkAdjustmentPaidRequest struct {
	PaymentDate time.Time `json:"payment_date"`
}

// CreateAdjustment creates the yearly adjustment for a flat and tenant.
// At most one adjustment may exist per flat, reference year and tenant.
func (s *AdjustmentService) CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	if _, err := s.flatRepo.FindByID(ctx, req.FlatID); err != nil {
		return nil, err
	}
	if _, err := s.tenantRepo.FindByID(ctx, req.TenantID); err != nil {
		return nil, err
	}

	existing, err := s.adjustmentRepo.FindByFlatYearAndTenant(ctx, req.FlatID, req.ReferenceYear, req.TenantID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An adjustment for this flat, year and tenant already exists")
	}

	adjustment, err := ledger.NewUtilitiesAdjustment(
		req.FlatID,
		req.TenantID,
		req.ReferenceYear,
		valueobject.NewMoneyEUR(req.LiftAmount),
		valueobject.NewMoneyEUR(req.HeatingAmount),
		valueobject.NewMoneyEUR(req.OtherAmount),
	)
	if err != nil {
		return nil, err
	}
	if req.ReferenceMonth != "" {
		month, err := valueobject.ParseMonth(req.ReferenceMonth)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_MONTH", "Reference month must be formatted as YYYY-MM")
		}
		adjustment.SetReferenceMonth(month)
	}
	adjustment.Notes = req.Notes

	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, err
	}
	return s.toAdjustmentResponse(ctx, adjustment)
}

// GetAdjustmentByID gets an adjustment by ID, with its computed balance
func (s *AdjustmentService) GetAdjustmentByID(ctx context.Context, id uuid.UUID) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toAdjustmentResponse(ctx, adjustment)
}

// ListByFlat lists the adjustments for a flat, newest year first
func (s *AdjustmentService) ListByFlat(ctx context.Context, flatID uuid.UUID) ([]AdjustmentResponse, error) {
	if _, err := s.flatRepo.FindByID(ctx, flatID); err != nil {
		return nil, err
	}

	adjustments, err := s.adjustmentRepo.FindByFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}
	responses := make([]AdjustmentResponse, len(adjustments))
	for i, a := range adjustments {
		resp, err := s.toAdjustmentResponse(ctx, &a)
		if err != nil {
			return nil, err
		}
		responses[i] = *resp
	}
	return responses, nil
}

// UpdateAdjustment replaces the charge lines of an adjustment
func (s *AdjustmentService) UpdateAdjustment(ctx context.Context, id uuid.UUID, req UpdateAdjustmentRequest) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := adjustment.UpdateCharges(
		valueobject.NewMoneyEUR(req.LiftAmount),
		valueobject.NewMoneyEUR(req.HeatingAmount),
		valueobject.NewMoneyEUR(req.OtherAmount),
	); err != nil {
		return nil, err
	}
	if req.ReferenceMonth != "" {
		month, err := valueobject.ParseMonth(req.ReferenceMonth)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_MONTH", "Reference month must be formatted as YYYY-MM")
		}
		adjustment.SetReferenceMonth(month)
	}
	adjustment.Notes = req.Notes

	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, err
	}
	return s.toAdjustmentResponse(ctx, adjustment)
}

// MarkPaid records settlement of an adjustment
func (s *AdjustmentService) MarkPaid(ctx context.Context, id uuid.UUID, req MarkAdjustmentPaidRequest) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := adjustment.MarkPaid(req.PaymentDate); err != nil {
		return nil, err
	}
	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, err
	}
	return s.toAdjustmentResponse(ctx, adjustment)
}

// DeleteAdjustment removes an adjustment
func (s *AdjustmentService) DeleteAdjustment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.adjustmentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.adjustmentRepo.Delete(ctx, id)
}

// toAdjustmentResponse computes the reconciliation balance: utilities
// actually paid by the tenant over the reference year minus the total
// charges of the adjustment.
func (s *AdjustmentService) toAdjustmentResponse(ctx context.Context, a *ledger.UtilitiesAdjustment) (*AdjustmentResponse, error) {
	tenantID := a.TenantID
	paid, err := s.paymentRepo.SumUtilitiesForYear(ctx, a.FlatID, a.ReferenceYear, &tenantID)
	if err != nil {
		return nil, err
	}

	var refMonth *string
	if a.ReferenceMonth != nil {
		m := a.ReferenceMonth.String()
		refMonth = &m
	}

	return &AdjustmentResponse{
		ID:             a.ID,
		FlatID:         a.FlatID,
		TenantID:       a.TenantID,
		ReferenceYear:  a.ReferenceYear,
		ReferenceMonth: refMonth,
		LiftAmount:     a.LiftAmount,
		HeatingAmount:  a.HeatingAmount,
		OtherAmount:    a.OtherAmount,
		TotalCharges:   a.TotalCharges(),
		UtilitiesPaid:  paid,
		Balance:        a.Balance(paid),
		IsPaid:         a.IsPaid,
		PaymentDate:    a.PaymentDate,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Version:        a.Version,
	}, nil
}
