package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mls/backend/internal/domain/ledger"
	"github.com/mls/backend/internal/domain/property"
	"github.com/mls/backend/internal/domain/shared"
	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/mls/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// HistoryService assembles the monthly payment-history projection and
// the tenant and flat summaries.
type HistoryService struct {
	paymentRepo    ledger.PaymentRepository
	adjustmentRepo ledger.AdjustmentRepository
	chargeRepo     ledger.ExtraChargeRepository
	tenantRepo     tenancy.TenantRepository
	flatRepo       property.FlatRepository
	landlordRepo   property.LandlordRepository
	managerRepo    property.ManagerRepository
	commRepo       tenancy.CommunicationRepository

	// now is swappable in tests
	now func() time.Time
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(
	paymentRepo ledger.PaymentRepository,
	adjustmentRepo ledger.AdjustmentRepository,
	chargeRepo ledger.ExtraChargeRepository,
	tenantRepo tenancy.TenantRepository,
	flatRepo property.FlatRepository,
	landlordRepo property.LandlordRepository,
	managerRepo property.ManagerRepository,
	commRepo tenancy.CommunicationRepository,
) *HistoryService {
	return &HistoryService{
		paymentRepo:    paymentRepo,
		adjustmentRepo: adjustmentRepo,
		chargeRepo:     chargeRepo,
		tenantRepo:     tenantRepo,
		flatRepo:       flatRepo,
		landlordRepo:   landlordRepo,
		managerRepo:    managerRepo,
		commRepo:       commRepo,
		now:            time.Now,
	}
}

// HistoryRow is one month of a tenant's payment history for a flat
type HistoryRow struct {
	Month        string                `json:"month"`
	IsPaid       bool                  `json:"is_paid"`
	Payment      *PaymentResponse      `json:"payment,omitempty"`
	ExtraCharges []ExtraChargeResponse `json:"extra_charges,omitempty"`
	Adjustment   *AdjustmentSnapshot   `json:"adjustment,omitempty"`
	NoticeSentAt *time.Time            `json:"notice_sent_at,omitempty"`
}

// AdjustmentSnapshot carries the adjustment fields a history row needs
type AdjustmentSnapshot struct {
	ID           uuid.UUID       `json:"id"`
	TotalCharges decimal.Decimal `json:"total_charges"`
	IsPaid       bool            `json:"is_paid"`
}

// TenantSummary is the per-tenant overview used by the dashboard
type TenantSummary struct {
	ID                  uuid.UUID              `json:"id"`
	FirstName           string                 `json:"first_name"`
	LastName            string                 `json:"last_name"`
	Email               string                 `json:"email"`
	Status              string                 `json:"status"`
	FlatID              *uuid.UUID             `json:"flat_id,omitempty"`
	FlatName            *string                `json:"flat_name,omitempty"`
	StartDate           *time.Time             `json:"start_date,omitempty"`
	MissedPaymentsCount int                    `json:"missed_payments_count"`
	NoticeSentForMonth  bool                   `json:"notice_sent_for_month"`
	LandlordName        *string                `json:"landlord_name,omitempty"`
	ManagerName         *string                `json:"manager_name,omitempty"`
	PaymentCount        int                    `json:"payment_count"`
	AdjustmentCount     int                    `json:"adjustment_count"`
	CommunicationCount  int                    `json:"communication_count"`
	Payments            []PaymentResponse      `json:"payments,omitempty"`
	Adjustments         []AdjustmentSnapshot   `json:"adjustments,omitempty"`
	Communications      []CommunicationRecord  `json:"communications,omitempty"`
}

// CommunicationRecord is the communication slice used in summaries
type CommunicationRecord struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	DateSent       time.Time `json:"date_sent"`
	ReferenceMonth *string   `json:"reference_month,omitempty"`
	Subject        string    `json:"subject"`
}

// AdjustmentRow is an adjustment with its computed yearly figures,
// used in flat summaries and adjustment listings
type AdjustmentRow struct {
	ID                  uuid.UUID       `json:"id"`
	FlatID              uuid.UUID       `json:"flat_id"`
	FlatName            string          `json:"flat_name"`
	TenantID            uuid.UUID       `json:"tenant_id"`
	TenantName          string          `json:"tenant_name"`
	ReferenceYear       int             `json:"reference_year"`
	LiftAmount          decimal.Decimal `json:"lift_amount"`
	HeatingAmount       decimal.Decimal `json:"heating_amount"`
	OtherAmount         decimal.Decimal `json:"other_amount"`
	TotalCharges        decimal.Decimal `json:"total_charges"`
	YearlyUtilitiesPaid decimal.Decimal `json:"yearly_utilities_paid"`
	UtilitiesBalance    decimal.Decimal `json:"utilities_balance"`
	IsPaid              bool            `json:"is_paid"`
}

// FlatSummary is the per-flat overview: current occupant, reconciliation
// rows and extra charges grouped by month. All tenant-dependent fields
// are nil for a vacant flat.
type FlatSummary struct {
	ID                  uuid.UUID                        `json:"id"`
	Name                string                           `json:"name"`
	Address             string                           `json:"address"`
	City                string                           `json:"city"`
	RentAmount          decimal.Decimal                  `json:"rent_amount"`
	UtilitiesAmount     decimal.Decimal                  `json:"utilities_amount"`
	LandlordName        *string                          `json:"landlord_name,omitempty"`
	ManagerName         *string                          `json:"manager_name,omitempty"`
	TenantID            *uuid.UUID                       `json:"tenant_id,omitempty"`
	TenantName          *string                          `json:"tenant_name,omitempty"`
	TenantStartDate     *time.Time                       `json:"tenant_start_date,omitempty"`
	Adjustments         []AdjustmentRow                  `json:"adjustments"`
	LatestAdjustment    *AdjustmentRow                   `json:"latest_adjustment,omitempty"`
	Communications      []CommunicationRecord            `json:"communications,omitempty"`
	ExtraChargesByMonth map[string][]ExtraChargeResponse `json:"extra_charges_by_month,omitempty"`
}

// PaymentHistory builds the monthly projection for one tenancy, newest
// month first. One row exists for every month from the tenancy start
// (or the current month when no start date is set) through today; the
// in-progress month is included even after the tenancy has ended.
func (s *HistoryService) PaymentHistory(ctx context.Context, tenantID, flatID uuid.UUID) ([]HistoryRow, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.flatRepo.FindByID(ctx, flatID); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByTenantAndFlat(ctx, tenantID, flatID)
	if err != nil {
		return nil, err
	}
	// Adjustments are keyed by flat alone so reconciliation rows from a
	// previous occupant stay visible on the flat's timeline.
	adjustments, err := s.adjustmentRepo.FindByFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}
	charges, err := s.chargeRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	notices, err := s.commRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	first := valueobject.MonthOf(s.now())
	if tenant.StartDate != nil {
		first = valueobject.MonthOf(*tenant.StartDate)
	}
	last := valueobject.MonthOf(s.now())
	months := valueobject.MonthsBetween(first, last)

	// Index everything by month once; the projection loop stays O(1)
	// per row.
	paymentsByMonth := make(map[valueobject.Month]*ledger.Payment)
	for i := range payments {
		p := &payments[i]
		if p.PaymentMonth != nil {
			if _, ok := paymentsByMonth[*p.PaymentMonth]; !ok {
				paymentsByMonth[*p.PaymentMonth] = p
			}
		}
	}
	chargesByMonth := make(map[valueobject.Month][]ExtraChargeResponse)
	for i := range charges {
		c := &charges[i]
		chargesByMonth[c.ReferenceMonth] = append(chargesByMonth[c.ReferenceMonth], *toExtraChargeResponse(c))
	}
	noticesByMonth := make(map[valueobject.Month]time.Time)
	for _, n := range notices {
		if n.Type == tenancy.CommunicationTypeMissingPaymentNotice && n.ReferenceMonth != nil {
			noticesByMonth[*n.ReferenceMonth] = n.DateSent
		}
	}

	rows := make([]HistoryRow, 0, len(months))
	// Newest first
	for i := len(months) - 1; i >= 0; i-- {
		month := months[i]
		row := HistoryRow{
			Month:        month.String(),
			ExtraCharges: chargesByMonth[month],
		}
		if p, ok := paymentsByMonth[month]; ok {
			row.IsPaid = true
			row.Payment = toPaymentResponse(p)
		}
		for j := range adjustments {
			if adjustments[j].CoversMonth(month) {
				row.Adjustment = &AdjustmentSnapshot{
					ID:           adjustments[j].ID,
					TotalCharges: adjustments[j].TotalCharges(),
					IsPaid:       adjustments[j].IsPaid,
				}
				break
			}
		}
		if sentAt, ok := noticesByMonth[month]; ok {
			row.NoticeSentAt = &sentAt
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TenantSummaries builds the dashboard overview for active tenants.
// A non-nil tenantID restricts the result to one tenant; noticeMonth
// selects the month checked for a sent missing-payment notice and
// defaults to the current month.
func (s *HistoryService) TenantSummaries(ctx context.Context, tenantID *uuid.UUID, noticeMonth *valueobject.Month) ([]TenantSummary, error) {
	var tenants []tenancy.Tenant
	if tenantID != nil {
		tenant, err := s.tenantRepo.FindByID(ctx, *tenantID)
		if err != nil {
			return nil, err
		}
		tenants = []tenancy.Tenant{*tenant}
	} else {
		var err error
		tenants, err = s.tenantRepo.FindActive(ctx)
		if err != nil {
			return nil, err
		}
	}

	checkMonth := valueobject.MonthOf(s.now())
	if noticeMonth != nil {
		checkMonth = *noticeMonth
	}

	summaries := make([]TenantSummary, 0, len(tenants))
	for i := range tenants {
		summary, err := s.buildTenantSummary(ctx, &tenants[i], checkMonth)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *HistoryService) buildTenantSummary(ctx context.Context, tenant *tenancy.Tenant, checkMonth valueobject.Month) (*TenantSummary, error) {
	payments, err := s.paymentRepo.FindByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	comms, err := s.commRepo.FindByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	summary := &TenantSummary{
		ID:                  tenant.ID,
		FirstName:           tenant.FirstName,
		LastName:            tenant.LastName,
		Email:               tenant.Email,
		Status:              tenant.Status().String(),
		FlatID:              tenant.FlatID,
		StartDate:           tenant.StartDate,
		MissedPaymentsCount: ledger.CountMissingMonths(tenant.StartDate, s.now(), ledger.NewMonthSet(payments)),
		PaymentCount:        len(payments),
		CommunicationCount:  len(comms),
	}

	for i := range payments {
		summary.Payments = append(summary.Payments, *toPaymentResponse(&payments[i]))
	}
	for i := range comms {
		c := &comms[i]
		record := CommunicationRecord{
			ID:       c.ID,
			Type:     c.Type.String(),
			DateSent: c.DateSent,
			Subject:  c.Subject,
		}
		if c.ReferenceMonth != nil {
			m := c.ReferenceMonth.String()
			record.ReferenceMonth = &m
		}
		summary.Communications = append(summary.Communications, record)
		if c.Type == tenancy.CommunicationTypeMissingPaymentNotice &&
			c.ReferenceMonth != nil && c.ReferenceMonth.Equals(checkMonth) {
			summary.NoticeSentForMonth = true
		}
	}

	if tenant.FlatID != nil {
		flat, err := s.flatRepo.FindByID(ctx, *tenant.FlatID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if flat != nil {
			summary.FlatName = &flat.Name
			if err := s.attachOwnership(ctx, flat, &summary.LandlordName, &summary.ManagerName); err != nil {
				return nil, err
			}

			adjustments, err := s.adjustmentRepo.FindByFlatAndTenant(ctx, flat.ID, tenant.ID)
			if err != nil {
				return nil, err
			}
			summary.AdjustmentCount = len(adjustments)
			for i := range adjustments {
				summary.Adjustments = append(summary.Adjustments, AdjustmentSnapshot{
					ID:           adjustments[i].ID,
					TotalCharges: adjustments[i].TotalCharges(),
					IsPaid:       adjustments[i].IsPaid,
				})
			}
		}
	}

	return summary, nil
}

// FlatSummary builds the per-flat overview. Vacant flats come back with
// nil tenant fields and empty adjustment rows rather than an error.
func (s *HistoryService) FlatSummary(ctx context.Context, flatID uuid.UUID) (*FlatSummary, error) {
	flat, err := s.flatRepo.FindByID(ctx, flatID)
	if err != nil {
		return nil, err
	}

	summary := &FlatSummary{
		ID:              flat.ID,
		Name:            flat.Name,
		Address:         flat.Address,
		City:            flat.City,
		RentAmount:      flat.RentAmount,
		UtilitiesAmount: flat.UtilitiesAmount,
		Adjustments:     []AdjustmentRow{},
	}
	if err := s.attachOwnership(ctx, flat, &summary.LandlordName, &summary.ManagerName); err != nil {
		return nil, err
	}

	occupant, err := s.tenantRepo.FindActiveByFlat(ctx, flatID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if occupant != nil {
		name := occupant.FullName()
		summary.TenantID = &occupant.ID
		summary.TenantName = &name
		summary.TenantStartDate = occupant.StartDate

		comms, err := s.commRepo.FindByTenant(ctx, occupant.ID)
		if err != nil {
			return nil, err
		}
		for i := range comms {
			c := &comms[i]
			record := CommunicationRecord{
				ID:       c.ID,
				Type:     c.Type.String(),
				DateSent: c.DateSent,
				Subject:  c.Subject,
			}
			if c.ReferenceMonth != nil {
				m := c.ReferenceMonth.String()
				record.ReferenceMonth = &m
			}
			summary.Communications = append(summary.Communications, record)
		}

		charges, err := s.chargeRepo.FindByTenant(ctx, occupant.ID)
		if err != nil {
			return nil, err
		}
		if len(charges) > 0 {
			summary.ExtraChargesByMonth = make(map[string][]ExtraChargeResponse)
			for i := range charges {
				key := charges[i].ReferenceMonth.String()
				summary.ExtraChargesByMonth[key] = append(summary.ExtraChargesByMonth[key], *toExtraChargeResponse(&charges[i]))
			}
		}
	}

	adjustments, err := s.adjustmentRepo.FindByFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}
	for i := range adjustments {
		row, err := s.buildAdjustmentRow(ctx, &adjustments[i], flat)
		if err != nil {
			return nil, err
		}
		summary.Adjustments = append(summary.Adjustments, *row)
	}
	if len(summary.Adjustments) > 0 {
		summary.LatestAdjustment = &summary.Adjustments[0]
	}

	return summary, nil
}

// AdjustmentRows builds the enriched adjustment listing. A non-nil
// flatID restricts to one flat, a non-nil year to one reference year.
func (s *HistoryService) AdjustmentRows(ctx context.Context, flatID *uuid.UUID, year *int) ([]AdjustmentRow, error) {
	var adjustments []ledger.UtilitiesAdjustment
	var err error
	switch {
	case flatID != nil:
		adjustments, err = s.adjustmentRepo.FindByFlat(ctx, *flatID)
	case year != nil:
		adjustments, err = s.adjustmentRepo.FindByYear(ctx, *year)
	default:
		adjustments, err = s.adjustmentRepo.FindAll(ctx, shared.Filter{OrderBy: "reference_year", OrderDir: "desc"})
	}
	if err != nil {
		return nil, err
	}

	rows := make([]AdjustmentRow, 0, len(adjustments))
	for i := range adjustments {
		a := &adjustments[i]
		if year != nil && a.ReferenceYear != *year {
			continue
		}
		flat, err := s.flatRepo.FindByID(ctx, a.FlatID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		row, err := s.buildAdjustmentRow(ctx, a, flat)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

// YearlyUtilitiesPaid returns the utilities paid for a flat over one
// year, optionally restricted to a tenant
func (s *HistoryService) YearlyUtilitiesPaid(ctx context.Context, flatID uuid.UUID, year int, tenantID *uuid.UUID) (decimal.Decimal, error) {
	if _, err := s.flatRepo.FindByID(ctx, flatID); err != nil {
		return decimal.Zero, err
	}
	return s.paymentRepo.SumUtilitiesForYear(ctx, flatID, year, tenantID)
}

func (s *HistoryService) buildAdjustmentRow(ctx context.Context, a *ledger.UtilitiesAdjustment, flat *property.Flat) (*AdjustmentRow, error) {
	tenantID := a.TenantID
	paid, err := s.paymentRepo.SumUtilitiesForYear(ctx, a.FlatID, a.ReferenceYear, &tenantID)
	if err != nil {
		return nil, err
	}

	row := &AdjustmentRow{
		ID:                  a.ID,
		FlatID:              a.FlatID,
		TenantID:            a.TenantID,
		ReferenceYear:       a.ReferenceYear,
		LiftAmount:          a.LiftAmount,
		HeatingAmount:       a.HeatingAmount,
		OtherAmount:         a.OtherAmount,
		TotalCharges:        a.TotalCharges(),
		YearlyUtilitiesPaid: paid,
		UtilitiesBalance:    a.Balance(paid),
		IsPaid:              a.IsPaid,
	}
	if flat != nil {
		row.FlatName = flat.Name
	}

	tenant, err := s.tenantRepo.FindByID(ctx, a.TenantID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if tenant != nil {
		row.TenantName = tenant.FullName()
	}
	return row, nil
}

func (s *HistoryService) attachOwnership(ctx context.Context, flat *property.Flat, landlordName, managerName **string) error {
	landlord, err := s.landlordRepo.FindByID(ctx, flat.LandlordID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if landlord != nil {
		name := landlord.FullName()
		*landlordName = &name
	}
	if flat.ManagerID != nil {
		manager, err := s.managerRepo.FindByID(ctx, *flat.ManagerID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if manager != nil {
			*managerName = &manager.Name
		}
	}
	return nil
}
