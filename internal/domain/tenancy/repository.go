package tenancy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
)

// TenantRepository provides access to tenant aggregates
type TenantRepository interface {
	shared.Repository[Tenant]
	// FindActiveByFlat returns the current occupant of the flat, or
	// shared.ErrNotFound when the flat is vacant.
	FindActiveByFlat(ctx context.Context, flatID uuid.UUID) (*Tenant, error)
	// FindActiveByFlatForUpdate does the same under a row lock, inside
	// the transaction bound to ctx.
	FindActiveByFlatForUpdate(ctx context.Context, flatID uuid.UUID) (*Tenant, error)
	FindActive(ctx context.Context) ([]Tenant, error)
	FindUnassigned(ctx context.Context) ([]Tenant, error)
	// LastEndDateByFlat returns the most recent end date among former
	// occupants of the flat, or nil when it was never occupied.
	LastEndDateByFlat(ctx context.Context, flatID uuid.UUID) (*time.Time, error)
}

// CommunicationRepository provides access to communication records
type CommunicationRepository interface {
	shared.Repository[Communication]
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Communication, error)
	FindByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]Communication, error)
	FindByTenantTypeAndMonth(ctx context.Context, tenantID uuid.UUID, commType CommunicationType, month valueobject.Month) ([]Communication, error)
}
