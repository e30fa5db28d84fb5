package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
)

// LandlordRepository provides access to landlord aggregates
type LandlordRepository interface {
	shared.Repository[Landlord]
	FindByEmail(ctx context.Context, email string) (*Landlord, error)
	FindByCity(ctx context.Context, city string) ([]Landlord, error)
}

// ManagerRepository provides access to building manager aggregates
type ManagerRepository interface {
	shared.Repository[BuildingManager]
}

// FlatRepository provides access to flat aggregates
type FlatRepository interface {
	shared.Repository[Flat]
	FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Flat, error)
	CountByLandlord(ctx context.Context, landlordID uuid.UUID) (int64, error)
	FindByCity(ctx context.Context, city string) ([]Flat, error)
}
