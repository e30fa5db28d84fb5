package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
)

// Event types
const (
	EventTypeFlatAssigned = "tenancy.flat_assigned"
	EventTypeTenancyEnded = "tenancy.tenancy_ended"
)

// FlatAssignedEvent is raised when a tenant moves into a flat
type FlatAssignedEvent struct {
	shared.BaseDomainEvent
	FlatID    uuid.UUID `json:"flat_id"`
	StartDate time.Time `json:"start_date"`
}

// NewFlatAssignedEvent creates a new flat assigned event
func NewFlatAssignedEvent(t *Tenant, flatID uuid.UUID, startDate time.Time) *FlatAssignedEvent {
	return &FlatAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFlatAssigned, "Tenant", t.ID),
		FlatID:          flatID,
		StartDate:       startDate,
	}
}

// TenancyEndedEvent is raised when a tenancy is closed
type TenancyEndedEvent struct {
	shared.BaseDomainEvent
	FlatID  uuid.UUID `json:"flat_id"`
	EndDate time.Time `json:"end_date"`
}

// NewTenancyEndedEvent creates a new tenancy ended event
func NewTenancyEndedEvent(t *Tenant, flatID uuid.UUID, endDate time.Time) *TenancyEndedEvent {
	return &TenancyEndedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenancyEnded, "Tenant", t.ID),
		FlatID:          flatID,
		EndDate:         endDate,
	}
}
