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

// ExtraChargeService provides application-level extra charge operations
type ExtraChargeService struct {
	chargeRepo ledger.ExtraChargeRepository
	tenantRepo tenancy.TenantRepository
	flatRepo   property.FlatRepository
}

// NewExtraChargeService creates a new ExtraChargeService
func NewExtraChargeService(
	chargeRepo ledger.ExtraChargeRepository,
	tenantRepo tenancy.TenantRepository,
	flatRepo property.FlatRepository,
) *ExtraChargeService {
	return &ExtraChargeService{
		chargeRepo: chargeRepo,
		tenantRepo: tenantRepo,
		flatRepo:   flatRepo,
	}
}

// ExtraChargeResponse represents an extra charge in API responses
type ExtraChargeResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	FlatID         uuid.UUID       `json:"flat_id"`
	Type           string          `json:"type"`
	ChargeAmount   decimal.Decimal `json:"charge_amount"`
	ReferenceMonth string          `json:"reference_month"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// CreateExtraChargeRequest represents a request to bill an extra charge
type CreateExtraChargeRequest struct {
	TenantID       uuid.UUID       `json:"tenant_id" binding:"required"`
	FlatID         uuid.UUID       `json:"flat_id" binding:"required"`
	Type           string          `json:"type" binding:"required"`
	ChargeAmount   decimal.Decimal `json:"charge_amount" binding:"required"`
	ReferenceMonth string          `json:"reference_month" binding:"required,month"`
	Description    string          `json:"description"`
}

// UpdateExtraChargeRequest represents a request to correct an extra charge
type UpdateExtraChargeRequest struct {
	ChargeAmount decimal.Decimal `json:"charge_amount" binding:"required"`
	Description  string          `json:"description"`
}

// CreateExtraCharge bills a one-off charge to a tenant
func (s *ExtraChargeService) CreateExtraCharge(ctx context.Context, req CreateExtraChargeRequest) (*ExtraChargeResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, req.TenantID); err != nil {
		return nil, err
	}
	if _, err := s.flatRepo.FindByID(ctx, req.FlatID); err != nil {
		return nil, err
	}

	month, err := valueobject.ParseMonth(req.ReferenceMonth)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_MONTH", "Reference month must be formatted as YYYY-MM")
	}

	charge, err := ledger.NewExtraCharge(
		req.TenantID,
		req.FlatID,
		ledger.ExtraChargeType(req.Type),
		valueobject.NewMoneyEUR(req.ChargeAmount),
		month,
	)
	if err != nil {
		return nil, err
	}
	charge.Description = req.Description

	if err := s.chargeRepo.Save(ctx, charge); err != nil {
		return nil, err
	}
	return toExtraChargeResponse(charge), nil
}

// GetExtraChargeByID gets an extra charge by ID
func (s *ExtraChargeService) GetExtraChargeByID(ctx context.Context, id uuid.UUID) (*ExtraChargeResponse, error) {
	charge, err := s.chargeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExtraChargeResponse(charge), nil
}

// ListByTenant lists the extra charges billed to a tenant, newest first
func (s *ExtraChargeService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]ExtraChargeResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	charges, err := s.chargeRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return extraChargesToResponses(charges), nil
}

// ListByFlat lists the extra charges billed for a flat, newest first
func (s *ExtraChargeService) ListByFlat(ctx context.Context, flatID uuid.UUID) ([]ExtraChargeResponse, error) {
	if _, err := s.flatRepo.FindByID(ctx, flatID); err != nil {
		return nil, err
	}

	charges, err := s.chargeRepo.FindByFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}
	return extraChargesToResponses(charges), nil
}

// UpdateExtraCharge corrects an extra charge
func (s *ExtraChargeService) UpdateExtraCharge(ctx context.Context, id uuid.UUID, req UpdateExtraChargeRequest) (*ExtraChargeResponse, error) {
	charge, err := s.chargeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := charge.UpdateAmount(valueobject.NewMoneyEUR(req.ChargeAmount)); err != nil {
		return nil, err
	}
	charge.Description = req.Description

	if err := s.chargeRepo.Save(ctx, charge); err != nil {
		return nil, err
	}
	return toExtraChargeResponse(charge), nil
}

// DeleteExtraCharge removes an extra charge
func (s *ExtraChargeService) DeleteExtraCharge(ctx context.Context, id uuid.UUID) error {
	if _, err := s.chargeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.chargeRepo.Delete(ctx, id)
}

func extraChargesToResponses(charges []ledger.ExtraCharge) []ExtraChargeResponse {
	responses := make([]ExtraChargeResponse, len(charges))
	for i, c := range charges {
		responses[i] = *toExtraChargeResponse(&c)
	}
	return responses
}

func toExtraChargeResponse(c *ledger.ExtraCharge) *ExtraChargeResponse {
	return &ExtraChargeResponse{
		ID:             c.ID,
		TenantID:       c.TenantID,
		FlatID:         c.FlatID,
		Type:           c.Type.String(),
		ChargeAmount:   c.ChargeAmount,
		ReferenceMonth: c.ReferenceMonth.String(),
		Description:    c.Description,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		Version:        c.Version,
	}
}
