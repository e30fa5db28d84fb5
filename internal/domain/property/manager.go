package property

import (
	"strings"
	"time"

	"github.com/mls/backend/internal/domain/shared"
)

// BuildingManager represents the managing agency of a building
type BuildingManager struct {
	shared.BaseAggregateRoot
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PostCode string `json:"post_code"`
	City     string `json:"city"`
}

// NewBuildingManager creates a new building manager
func NewBuildingManager(name string) (*BuildingManager, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Manager name cannot be empty")
	}
	return &BuildingManager{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
	}, nil
}

// UpdateContact updates the contact details
func (m *BuildingManager) UpdateContact(email, phone string) {
	m.Email = strings.ToLower(strings.TrimSpace(email))
	m.Phone = phone
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// UpdateAddress updates the postal address
func (m *BuildingManager) UpdateAddress(address, postCode, city string) {
	m.Address = address
	m.PostCode = postCode
	m.City = city
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}
