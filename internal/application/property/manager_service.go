package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
)

// ManagerService provides application-level building manager operations
type ManagerService struct {
	managerRepo property.ManagerRepository
}

// NewManagerService creates a new ManagerService
func NewManagerService(managerRepo property.ManagerRepository) *ManagerService {
	return &ManagerService{managerRepo: managerRepo}
}

// ManagerResponse represents a building manager in API responses
type ManagerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	PostCode  string    `json:"post_code"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// CreateManagerRequest represents a request to create a building manager
type CreateManagerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PostCode string `json:"post_code"`
	City     string `json:"city"`
}

// UpdateManagerRequest represents a request to update a building manager
type UpdateManagerRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PostCode string `json:"post_code"`
	City     string `json:"city"`
}

// ManagerListFilter defines filtering options for manager list queries
type ManagerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// CreateManager registers a new building manager
func (s *ManagerService) CreateManager(ctx context.Context, req CreateManagerRequest) (*ManagerResponse, error) {
	manager, err := property.NewBuildingManager(req.Name)
	if err != nil {
		return nil, err
	}
	manager.UpdateContact(req.Email, req.Phone)
	manager.UpdateAddress(req.Address, req.PostCode, req.City)

	if err := s.managerRepo.Save(ctx, manager); err != nil {
		return nil, err
	}
	return toManagerResponse(manager), nil
}

// GetManagerByID gets a building manager by ID
func (s *ManagerService) GetManagerByID(ctx context.Context, id uuid.UUID) (*ManagerResponse, error) {
	manager, err := s.managerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toManagerResponse(manager), nil
}

// ListManagers lists building managers with filtering and pagination
func (s *ManagerService) ListManagers(ctx context.Context, filter ManagerListFilter) (*shared.Paginated[ManagerResponse], error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)

	managers, err := s.managerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.managerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ManagerResponse, len(managers))
	for i, m := range managers {
		responses[i] = *toManagerResponse(&m)
	}

	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// UpdateManager updates a building manager's contact and address details
func (s *ManagerService) UpdateManager(ctx context.Context, id uuid.UUID, req UpdateManagerRequest) (*ManagerResponse, error) {
	manager, err := s.managerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	manager.UpdateContact(req.Email, req.Phone)
	manager.UpdateAddress(req.Address, req.PostCode, req.City)

	if err := s.managerRepo.Save(ctx, manager); err != nil {
		return nil, err
	}
	return toManagerResponse(manager), nil
}

// DeleteManager removes a building manager
func (s *ManagerService) DeleteManager(ctx context.Context, id uuid.UUID) error {
	if _, err := s.managerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.managerRepo.Delete(ctx, id)
}

func toManagerResponse(m *property.BuildingManager) *ManagerResponse {
	return &ManagerResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		PostCode:  m.PostCode,
		City:      m.City,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Version:   m.Version,
	}
}
