package tenancy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// CommunicationService records documents sent to tenants and delivers
// ad-hoc emails through the configured mailer.
type CommunicationService struct {
	commRepo   tenancy.CommunicationRepository
	tenantRepo tenancy.TenantRepository
	mailer     Mailer
	logger     *zap.Logger
}

// NewCommunicationService creates a new CommunicationService
func NewCommunicationService(
	commRepo tenancy.CommunicationRepository,
	tenantRepo tenancy.TenantRepository,
	mailer Mailer,
	logger *zap.Logger,
) *CommunicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommunicationService{
		commRepo:   commRepo,
		tenantRepo: tenantRepo,
		mailer:     mailer,
		logger:     logger,
	}
}

// CommunicationResponse represents a communication in API responses
type CommunicationResponse struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	Type           string     `json:"type"`
	DateSent       time.Time  `json:"date_sent"`
	ReferenceMonth *string    `json:"reference_month,omitempty"`
	Subject        string     `json:"subject"`
	Notes          string     `json:"notes"`
	PaymentID      *uuid.UUID `json:"payment_id,omitempty"`
	AdjustmentID   *uuid.UUID `json:"adjustment_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// RecordCommunicationRequest represents a request to record a sent document
type RecordCommunicationRequest struct {
	TenantID       uuid.UUID  `json:"tenant_id" binding:"required"`
	Type           string     `json:"type" binding:"required"`
	DateSent       time.Time  `json:"date_sent"`
	ReferenceMonth string     `json:"reference_month" binding:"omitempty,month"`
	Subject        string     `json:"subject"`
	Notes          string     `json:"notes"`
	PaymentID      *uuid.UUID `json:"payment_id"`
	AdjustmentID   *uuid.UUID `json:"adjustment_id"`
}

// SendEmailRequest represents a request to email a tenant
type SendEmailRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	Subject  string    `json:"subject" binding:"required"`
	Body     string    `json:"body" binding:"required"`
	Type     string    `json:"type"`
}

// RecordCommunication stores a record of a document sent to a tenant
func (s *CommunicationService) RecordCommunication(ctx context.Context, req RecordCommunicationRequest) (*CommunicationResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, req.TenantID); err != nil {
		return nil, err
	}

	commType := tenancy.CommunicationType(req.Type)
	comm, err := tenancy.NewCommunication(req.TenantID, commType, req.DateSent)
	if err != nil {
		return nil, err
	}
	comm.Subject = req.Subject
	comm.Notes = req.Notes

	if req.ReferenceMonth != "" {
		month, err := valueobject.ParseMonth(req.ReferenceMonth)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_MONTH", "Reference month must be formatted as YYYY-MM")
		}
		comm.SetReferenceMonth(month)
	}
	if req.PaymentID != nil {
		comm.AttachPayment(*req.PaymentID)
	}
	if req.AdjustmentID != nil {
		comm.AttachAdjustment(*req.AdjustmentID)
	}

	if err := s.commRepo.Save(ctx, comm); err != nil {
		return nil, err
	}
	return toCommunicationResponse(comm), nil
}

// ListByTenant returns the communications sent to a tenant, newest first
func (s *CommunicationService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]CommunicationResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	comms, err := s.commRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]CommunicationResponse, len(comms))
	for i, c := range comms {
		responses[i] = *toCommunicationResponse(&c)
	}
	return responses, nil
}

// ListByTenantAndMonth returns the communications sent to a tenant for
// one reference month
func (s *CommunicationService) ListByTenantAndMonth(ctx context.Context, tenantID uuid.UUID, month valueobject.Month) ([]CommunicationResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	comms, err := s.commRepo.FindByTenantAndMonth(ctx, tenantID, month)
	if err != nil {
		return nil, err
	}
	responses := make([]CommunicationResponse, len(comms))
	for i, c := range comms {
		responses[i] = *toCommunicationResponse(&c)
	}
	return responses, nil
}

// SendEmail delivers an email to a tenant and records it as an OTHER
// communication unless another type is given.
func (s *CommunicationService) SendEmail(ctx context.Context, req SendEmailRequest) (*CommunicationResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	commType := tenancy.CommunicationTypeOther
	if req.Type != "" {
		commType = tenancy.CommunicationType(req.Type)
		if !commType.IsValid() {
			return nil, shared.NewDomainError("INVALID_TYPE", "Communication type is not valid")
		}
	}

	if err := s.mailer.Send(ctx, Email{
		To:      tenant.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}); err != nil {
		s.logger.Error("Failed to send email",
			zap.String("tenant_id", tenant.ID.String()),
			zap.Error(err),
		)
		return nil, shared.NewDomainError("EMAIL_FAILED", "Email could not be delivered")
	}

	comm, err := tenancy.NewCommunication(req.TenantID, commType, time.Now())
	if err != nil {
		return nil, err
	}
	comm.Subject = req.Subject

	if err := s.commRepo.Save(ctx, comm); err != nil {
		return nil, err
	}
	return toCommunicationResponse(comm), nil
}

func toCommunicationResponse(c *tenancy.Communication) *CommunicationResponse {
	var refMonth *string
	if c.ReferenceMonth != nil {
		m := c.ReferenceMonth.String()
		refMonth = &m
	}
	return &CommunicationResponse{
		ID:             c.ID,
		TenantID:       c.TenantID,
		Type:           c.Type.String(),
		DateSent:       c.DateSent,
		ReferenceMonth: refMonth,
		Subject:        c.Subject,
		Notes:          c.Notes,
		PaymentID:      c.PaymentID,
		AdjustmentID:   c.AdjustmentID,
		CreatedAt:      c.CreatedAt,
	}
}
