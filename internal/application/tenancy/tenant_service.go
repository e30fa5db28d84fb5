package tenancy

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/mls/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TenantService provides application-level tenant operations.
// Flat assignment runs inside a transaction with a row lock on the
// current occupant so a flat never ends up with two active tenants.
type TenantService struct {
	db         *persistence.Database
	tenantRepo *persistence.GormTenantRepository
	flatRepo   property.FlatRepository
	logger     *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(db *persistence.Database, tenantRepo *persistence.GormTenantRepository, flatRepo property.FlatRepository, logger *zap.Logger) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{
		db:         db,
		tenantRepo: tenantRepo,
		flatRepo:   flatRepo,
		logger:     logger,
	}
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID            uuid.UUID       `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone,omitempty"`
	Address       string          `json:"address"`
	PostCode      string          `json:"post_code"`
	City          string          `json:"city"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	FlatID        *uuid.UUID      `json:"flat_id,omitempty"`
	StartDate     *time.Time      `json:"start_date,omitempty"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// CreateTenantRequest represents a request to register a tenant
type CreateTenantRequest struct {
	FirstName     string          `json:"first_name" binding:"required"`
	LastName      string          `json:"last_name" binding:"required"`
	Email         string          `json:"email" binding:"required,email"`
	Phone         *string         `json:"phone"`
	Address       string          `json:"address"`
	PostCode      string          `json:"post_code"`
	City          string          `json:"city"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
}

// UpdateTenantRequest represents a request to update a tenant
type UpdateTenantRequest struct {
	Email         string          `json:"email" binding:"required,email"`
	Phone         *string         `json:"phone"`
	Address       string          `json:"address"`
	PostCode      string          `json:"post_code"`
	City          string          `json:"city"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
}

// AssignFlatRequest represents a request to move a tenant into a flat
type AssignFlatRequest struct {
	FlatID    uuid.UUID `json:"flat_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
}

// EndTenancyRequest represents a request to end a tenancy.
// A zero end date defaults to today.
type EndTenancyRequest struct {
	EndDate time.Time `json:"end_date"`
}

// TenantListFilter defines filtering options for tenant list queries
type TenantListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// CreateTenant registers a new prospective tenant
func (s *TenantService) CreateTenant(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	tenant, err := tenancy.NewTenant(req.FirstName, req.LastName, req.Email)
	if err != nil {
		return nil, err
	}
	tenant.Phone = req.Phone
	tenant.Address = req.Address
	tenant.PostCode = req.PostCode
	tenant.City = req.City
	if err := tenant.SetDeposit(valueobject.NewMoneyEUR(req.DepositAmount)); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// GetTenantByID gets a tenant by ID
func (s *TenantService) GetTenantByID(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// ListTenants lists tenants with filtering and pagination
func (s *TenantService) ListTenants(ctx context.Context, filter TenantListFilter) (*shared.Paginated[TenantResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	tenants, err := s.tenantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.tenantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		responses[i] = *toTenantResponse(&t)
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// ListActiveTenants lists tenants currently occupying a flat
func (s *TenantService) ListActiveTenants(ctx context.Context) ([]TenantResponse, error) {
	tenants, err := s.tenantRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		responses[i] = *toTenantResponse(&t)
	}
	return responses, nil
}

// ListUnassignedTenants lists tenants without a flat
func (s *TenantService) ListUnassignedTenants(ctx context.Context) ([]TenantResponse, error) {
	tenants, err := s.tenantRepo.FindUnassigned(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		responses[i] = *toTenantResponse(&t)
	}
	return responses, nil
}

// UpdateTenant updates a tenant's contact details and deposit
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tenant.Email = req.Email
	tenant.Phone = req.Phone
	tenant.Address = req.Address
	tenant.PostCode = req.PostCode
	tenant.City = req.City
	if err := tenant.SetDeposit(valueobject.NewMoneyEUR(req.DepositAmount)); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// AssignFlat moves a tenant into a flat. If the flat currently has an
// active tenant, that occupancy is closed at the incoming start date so
// the flat never has two active tenants. The whole transition runs in
// one transaction with the current occupant row locked.
func (s *TenantService) AssignFlat(ctx context.Context, tenantID uuid.UUID, req AssignFlatRequest) (*TenantResponse, error) {
	if _, err := s.flatRepo.FindByID(ctx, req.FlatID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_FLAT", "Flat does not exist")
		}
		return nil, err
	}

	var updated *tenancy.Tenant

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.tenantRepo.WithTx(tx)

		tenant, err := repo.FindByID(ctx, tenantID)
		if err != nil {
			return err
		}

		occupant, err := repo.FindActiveByFlatForUpdate(ctx, req.FlatID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if occupant != nil && occupant.ID != tenant.ID {
			occupant.Displace(req.StartDate)
			if err := repo.Save(ctx, occupant); err != nil {
				return err
			}
			s.logger.Info("Displaced previous occupant",
				zap.String("flat_id", req.FlatID.String()),
				zap.String("tenant_id", occupant.ID.String()),
			)
		}

		if err := tenant.AssignFlat(req.FlatID, req.StartDate); err != nil {
			return err
		}
		if err := repo.Save(ctx, tenant); err != nil {
			return err
		}

		updated = tenant
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tenant assigned to flat",
		zap.String("tenant_id", tenantID.String()),
		zap.String("flat_id", req.FlatID.String()),
	)
	return toTenantResponse(updated), nil
}

// EndTenancy closes a tenant's active tenancy. A zero end date
// defaults to today.
func (s *TenantService) EndTenancy(ctx context.Context, tenantID uuid.UUID, req EndTenancyRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	endDate := req.EndDate
	if endDate.IsZero() {
		endDate = time.Now()
	}

	if err := tenant.EndTenancy(endDate); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("Tenancy ended",
		zap.String("tenant_id", tenantID.String()),
		zap.Time("end_date", endDate),
	)
	return toTenantResponse(tenant), nil
}

// DeleteTenant removes a tenant. Active tenants cannot be deleted.
func (s *TenantService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a tenant with an active tenancy")
	}
	return s.tenantRepo.Delete(ctx, id)
}

func toTenantResponse(t *tenancy.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:            t.ID,
		FirstName:     t.FirstName,
		LastName:      t.LastName,
		FullName:      t.FullName(),
		Email:         t.Email,
		Phone:         t.Phone,
		Address:       t.Address,
		PostCode:      t.PostCode,
		City:          t.City,
		DepositAmount: t.DepositAmount,
		FlatID:        t.FlatID,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		Status:        t.Status().String(),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Version:       t.Version,
	}
}
