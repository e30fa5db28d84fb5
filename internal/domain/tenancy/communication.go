package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
)

// CommunicationType represents the kind of document sent to a tenant
type CommunicationType string

const (
	CommunicationTypeRentReceipt              CommunicationType = "RENT_RECEIPT"
	CommunicationTypeAnnualReceipt            CommunicationType = "ANNUAL_RECEIPT"
	CommunicationTypeMissingPaymentNotice     CommunicationType = "MISSING_PAYMENT_NOTICE"
	CommunicationTypeRentNotice               CommunicationType = "RENT_NOTICE"
	CommunicationTypeRentNoticeWithAdjustment CommunicationType = "RENT_NOTICE_WITH_ADJUSTMENT"
	CommunicationTypeChargesNotice            CommunicationType = "CHARGES_NOTICE"
	CommunicationTypeOther                    CommunicationType = "OTHER"
)

// IsValid checks if the type is a valid CommunicationType
func (c CommunicationType) IsValid() bool {
	switch c {
	case CommunicationTypeRentReceipt, CommunicationTypeAnnualReceipt,
		CommunicationTypeMissingPaymentNotice, CommunicationTypeRentNotice,
		CommunicationTypeRentNoticeWithAdjustment, CommunicationTypeChargesNotice,
		CommunicationTypeOther:
		return true
	}
	return false
}

// String returns the string representation of CommunicationType
func (c CommunicationType) String() string {
	return string(c)
}

// Communication records a document or email sent to a tenant.
// The reference month ties receipts and notices to the ledger month
// they concern; it is empty for annual or ad-hoc correspondence.
type Communication struct {
	shared.BaseEntity
	TenantID       uuid.UUID          `json:"tenant_id"`
	Type           CommunicationType  `json:"type"`
	DateSent       time.Time          `json:"date_sent"`
	ReferenceMonth *valueobject.Month `json:"reference_month"`
	Subject        string             `json:"subject"`
	Notes          string             `json:"notes"`
	PaymentID      *uuid.UUID         `json:"payment_id"`
	AdjustmentID   *uuid.UUID         `json:"adjustment_id"`
}

// NewCommunication creates a new communication record
func NewCommunication(tenantID uuid.UUID, commType CommunicationType, dateSent time.Time) (*Communication, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !commType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Communication type is not valid")
	}
	if dateSent.IsZero() {
		dateSent = time.Now()
	}

	return &Communication{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Type:       commType,
		DateSent:   dateSent,
	}, nil
}

// SetReferenceMonth ties the communication to a ledger month
func (c *Communication) SetReferenceMonth(month valueobject.Month) {
	c.ReferenceMonth = &month
	c.UpdatedAt = time.Now()
}

// AttachPayment references the payment a receipt covers
func (c *Communication) AttachPayment(paymentID uuid.UUID) {
	c.PaymentID = &paymentID
	c.UpdatedAt = time.Now()
}

// AttachAdjustment references the adjustment a charges notice covers
func (c *Communication) AttachAdjustment(adjustmentID uuid.UUID) {
	c.AdjustmentID = &adjustmentID
	c.UpdatedAt = time.Now()
}
