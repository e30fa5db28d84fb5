package property

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
)

// LandlordService provides application-level landlord operations
type LandlordService struct {
	landlordRepo property.LandlordRepository
	flatRepo     property.FlatRepository
}

// NewLandlordService creates a new LandlordService
func NewLandlordService(landlordRepo property.LandlordRepository, flatRepo property.FlatRepository) *LandlordService {
	return &LandlordService{
		landlordRepo: landlordRepo,
		flatRepo:     flatRepo,
	}
}

// LandlordResponse represents a landlord in API responses
type LandlordResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	PostCode  string    `json:"post_code"`
	City      string    `json:"city"`
	IBAN      string    `json:"iban"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// CreateLandlordRequest represents a request to create a landlord
type CreateLandlordRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	PostCode  string `json:"post_code"`
	City      string `json:"city"`
	IBAN      string `json:"iban"`
}

// UpdateLandlordRequest represents a request to update a landlord
type UpdateLandlordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PostCode string `json:"post_code"`
	City     string `json:"city"`
	IBAN     string `json:"iban"`
}

// LandlordListFilter defines filtering options for landlord list queries
type LandlordListFilter struct {
	Search   string `form:"search"`
	City     string `form:"city"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// CreateLandlord registers a new landlord. The email must be unique.
func (s *LandlordService) CreateLandlord(ctx context.Context, req CreateLandlordRequest) (*LandlordResponse, error) {
	existing, err := s.landlordRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A landlord with this email already exists")
	}

	landlord, err := property.NewLandlord(req.FirstName, req.LastName, req.Email)
	if err != nil {
		return nil, err
	}
	landlord.Phone = req.Phone
	landlord.IBAN = req.IBAN
	landlord.UpdateAddress(req.Address, req.PostCode, req.City)

	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		return nil, err
	}
	return toLandlordResponse(landlord), nil
}

// GetLandlordByID gets a landlord by ID
func (s *LandlordService) GetLandlordByID(ctx context.Context, id uuid.UUID) (*LandlordResponse, error) {
	landlord, err := s.landlordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLandlordResponse(landlord), nil
}

// ListLandlords lists landlords with filtering and pagination
func (s *LandlordService) ListLandlords(ctx context.Context, filter LandlordListFilter) (*shared.Paginated[LandlordResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}

	landlords, err := s.landlordRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.landlordRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]LandlordResponse, len(landlords))
	for i, l := range landlords {
		responses[i] = *toLandlordResponse(&l)
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// UpdateLandlord updates a landlord's contact and address details
func (s *LandlordService) UpdateLandlord(ctx context.Context, id uuid.UUID, req UpdateLandlordRequest) (*LandlordResponse, error) {
	landlord, err := s.landlordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if landlord.Email != req.Email {
		existing, err := s.landlordRepo.FindByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != landlord.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A landlord with this email already exists")
		}
	}

	if err := landlord.UpdateContact(req.Email, req.Phone); err != nil {
		return nil, err
	}
	landlord.UpdateAddress(req.Address, req.PostCode, req.City)
	landlord.IBAN = req.IBAN

	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		return nil, err
	}
	return toLandlordResponse(landlord), nil
}

// DeleteLandlord removes a landlord. Landlords that still own flats
// cannot be deleted.
func (s *LandlordService) DeleteLandlord(ctx context.Context, id uuid.UUID) error {
	if _, err := s.landlordRepo.FindByID(ctx, id); err != nil {
		return err
	}

	flatCount, err := s.flatRepo.CountByLandlord(ctx, id)
	if err != nil {
		return err
	}
	if flatCount > 0 {
		return shared.ErrLandlordInUse
	}

	return s.landlordRepo.Delete(ctx, id)
}

func toLandlordResponse(l *property.Landlord) *LandlordResponse {
	return &LandlordResponse{
		ID:        l.ID,
		FirstName: l.FirstName,
		LastName:  l.LastName,
		FullName:  l.FullName(),
		Email:     l.Email,
		Phone:     l.Phone,
		Address:   l.Address,
		PostCode:  l.PostCode,
		City:      l.City,
		IBAN:      l.IBAN,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		Version:   l.Version,
	}
}

// buildFilter normalizes list parameters into a shared.Filter
func buildFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = orderBy
	filter.OrderDir = orderDir
	filter.Search = search
	return filter
}
