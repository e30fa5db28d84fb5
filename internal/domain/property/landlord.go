package property

import (
	"strings"
	"time"

	"github.com/mls/backend/internal/domain/shared"
)

// Landlord represents a property owner aggregate root
type Landlord struct {
	shared.BaseAggregateRoot
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	PostCode  string `json:"post_code"`
	City      string `json:"city"`
	IBAN      string `json:"iban"`
}

// NewLandlord creates a new landlord
func NewLandlord(firstName, lastName, email string) (*Landlord, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}

	return &Landlord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Email:             strings.ToLower(strings.TrimSpace(email)),
	}, nil
}

// FullName returns the display name of the landlord
func (l *Landlord) FullName() string {
	return l.FirstName + " " + l.LastName
}

// UpdateContact updates the contact details
func (l *Landlord) UpdateContact(email, phone string) error {
	if strings.TrimSpace(email) == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	l.Email = strings.ToLower(strings.TrimSpace(email))
	l.Phone = phone
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// UpdateAddress updates the postal address
func (l *Landlord) UpdateAddress(address, postCode, city string) {
	l.Address = address
	l.PostCode = postCode
	l.City = city
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}
