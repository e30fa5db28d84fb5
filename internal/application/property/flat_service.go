package property

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// FlatService provides application-level flat operations
type FlatService struct {
	flatRepo     property.FlatRepository
	landlordRepo property.LandlordRepository
	managerRepo  property.ManagerRepository
	tenantRepo   tenancy.TenantRepository
}

// NewFlatService creates a new FlatService
func NewFlatService(
	flatRepo property.FlatRepository,
	landlordRepo property.LandlordRepository,
	managerRepo property.ManagerRepository,
	tenantRepo tenancy.TenantRepository,
) *FlatService {
	return &FlatService{
		flatRepo:     flatRepo,
		landlordRepo: landlordRepo,
		managerRepo:  managerRepo,
		tenantRepo:   tenantRepo,
	}
}

// FlatResponse represents a flat in API responses
type FlatResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Address            string          `json:"address"`
	PostCode           string          `json:"post_code"`
	City               string          `json:"city"`
	Rooms              int             `json:"rooms"`
	FloorArea          decimal.Decimal `json:"floor_area"`
	RentAmount         decimal.Decimal `json:"rent_amount"`
	UtilitiesAmount    decimal.Decimal `json:"utilities_amount"`
	TotalMonthlyAmount decimal.Decimal `json:"total_monthly_amount"`
	LandlordID         uuid.UUID       `json:"landlord_id"`
	ManagerID          *uuid.UUID      `json:"manager_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// CreateFlatRequest represents a request to create a flat
type CreateFlatRequest struct {
	Name            string          `json:"name" binding:"required"`
	Address         string          `json:"address"`
	PostCode        string          `json:"post_code"`
	City            string          `json:"city"`
	Rooms           int             `json:"rooms"`
	FloorArea       decimal.Decimal `json:"floor_area"`
	RentAmount      decimal.Decimal `json:"rent_amount" binding:"required"`
	UtilitiesAmount decimal.Decimal `json:"utilities_amount"`
	LandlordID      uuid.UUID       `json:"landlord_id" binding:"required"`
	ManagerID       *uuid.UUID      `json:"manager_id"`
}

// UpdateFlatRequest represents a request to update a flat
type UpdateFlatRequest struct {
	Address         string          `json:"address"`
	PostCode        string          `json:"post_code"`
	City            string          `json:"city"`
	Rooms           int             `json:"rooms"`
	FloorArea       decimal.Decimal `json:"floor_area"`
	RentAmount      decimal.Decimal `json:"rent_amount" binding:"required"`
	UtilitiesAmount decimal.Decimal `json:"utilities_amount"`
	ManagerID       *uuid.UUID      `json:"manager_id"`
}

// FlatListFilter defines filtering options for flat list queries
type FlatListFilter struct {
	Search     string     `form:"search"`
	City       string     `form:"city"`
	LandlordID *uuid.UUID `form:"landlord_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// CreateFlat registers a new flat under an existing landlord
func (s *FlatService) CreateFlat(ctx context.Context, req CreateFlatRequest) (*FlatResponse, error) {
	if _, err := s.landlordRepo.FindByID(ctx, req.LandlordID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_LANDLORD", "Landlord does not exist")
		}
		return nil, err
	}
	if req.ManagerID != nil {
		if _, err := s.managerRepo.FindByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_MANAGER", "Building manager does not exist")
			}
			return nil, err
		}
	}

	rent := valueobject.NewMoneyEUR(req.RentAmount)
	utilities := valueobject.NewMoneyEUR(req.UtilitiesAmount)

	flat, err := property.NewFlat(req.Name, req.LandlordID, rent, utilities)
	if err != nil {
		return nil, err
	}
	flat.Rooms = req.Rooms
	flat.FloorArea = req.FloorArea
	flat.UpdateAddress(req.Address, req.PostCode, req.City)
	flat.AssignManager(req.ManagerID)

	if err := s.flatRepo.Save(ctx, flat); err != nil {
		return nil, err
	}
	return toFlatResponse(flat), nil
}

// GetFlatByID gets a flat by ID
func (s *FlatService) GetFlatByID(ctx context.Context, id uuid.UUID) (*FlatResponse, error) {
	flat, err := s.flatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFlatResponse(flat), nil
}

// ListFlats lists flats with filtering and pagination
func (s *FlatService) ListFlats(ctx context.Context, filter FlatListFilter) (*shared.Paginated[FlatResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}
	if filter.LandlordID != nil {
		domainFilter.Filters["landlord_id"] = *filter.LandlordID
	}

	flats, err := s.flatRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.flatRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]FlatResponse, len(flats))
	for i, f := range flats {
		responses[i] = *toFlatResponse(&f)
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// AvailableFlatResponse is a vacant flat together with the end date of
// its most recent tenancy, nil when the flat was never occupied
type AvailableFlatResponse struct {
	FlatResponse
	LastTenancyEnd *time.Time `json:"last_tenancy_end,omitempty"`
}

// ListAvailableFlats lists flats with no active tenant
func (s *FlatService) ListAvailableFlats(ctx context.Context) ([]AvailableFlatResponse, error) {
	flats, err := s.flatRepo.FindAll(ctx, shared.Filter{OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}

	activeTenants, err := s.tenantRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	occupied := make(map[uuid.UUID]bool, len(activeTenants))
	for _, t := range activeTenants {
		if t.FlatID != nil {
			occupied[*t.FlatID] = true
		}
	}

	var responses []AvailableFlatResponse
	for _, f := range flats {
		if occupied[f.ID] {
			continue
		}
		lastEnd, err := s.tenantRepo.LastEndDateByFlat(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, AvailableFlatResponse{
			FlatResponse:   *toFlatResponse(&f),
			LastTenancyEnd: lastEnd,
		})
	}
	return responses, nil
}

// UpdateFlat updates a flat's details
func (s *FlatService) UpdateFlat(ctx context.Context, id uuid.UUID, req UpdateFlatRequest) (*FlatResponse, error) {
	flat, err := s.flatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ManagerID != nil {
		if _, err := s.managerRepo.FindByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_MANAGER", "Building manager does not exist")
			}
			return nil, err
		}
	}

	rent := valueobject.NewMoneyEUR(req.RentAmount)
	utilities := valueobject.NewMoneyEUR(req.UtilitiesAmount)
	if err := flat.UpdateRent(rent, utilities); err != nil {
		return nil, err
	}
	flat.Rooms = req.Rooms
	flat.FloorArea = req.FloorArea
	flat.UpdateAddress(req.Address, req.PostCode, req.City)
	flat.AssignManager(req.ManagerID)

	if err := s.flatRepo.Save(ctx, flat); err != nil {
		return nil, err
	}
	return toFlatResponse(flat), nil
}

// DeleteFlat removes a flat. Occupied flats cannot be deleted.
func (s *FlatService) DeleteFlat(ctx context.Context, id uuid.UUID) error {
	if _, err := s.flatRepo.FindByID(ctx, id); err != nil {
		return err
	}

	occupant, err := s.tenantRepo.FindActiveByFlat(ctx, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if occupant != nil {
		return shared.ErrFlatOccupied
	}

	return s.flatRepo.Delete(ctx, id)
}

func toFlatResponse(f *property.Flat) *FlatResponse {
	return &FlatResponse{
		ID:                 f.ID,
		Name:               f.Name,
		Address:            f.Address,
		PostCode:           f.PostCode,
		City:               f.City,
		Rooms:              f.Rooms,
		FloorArea:          f.FloorArea,
		RentAmount:         f.RentAmount,
		UtilitiesAmount:    f.UtilitiesAmount,
		TotalMonthlyAmount: f.TotalMonthlyAmount().Amount(),
		LandlordID:         f.LandlordID,
		ManagerID:          f.ManagerID,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
		Version:            f.Version,
	}
}
