package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lease statuses.
const (
	LeaseStatusDraft      = "draft"
	LeaseStatusPending    = "pending"
	LeaseStatusActive     = "active"
	LeaseStatusExpired    = "expired"
	LeaseStatusTerminated = "terminated"
	LeaseStatusRenewed    = "renewed"
)

// Lease types.
const (
	LeaseTypeFixed        = "fixed"
	LeaseTypeMonthToMonth = "month_to_month"
)

// Late fee policies.
const (
	LateFeeFixed   = "fixed"
	LateFeePercent = "percent"
	LateFeeDaily   = "daily"
)

// Lease binds a tenant and a property/unit to rent terms for a date range.
// Renewal never mutates an old lease's dates; it spawns a new Lease row.
type Lease struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsDeleted bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	OwnerID    uint  `gorm:"not null;index:idx_leases_owner_status" json:"owner_id"`
	PropertyID uint  `gorm:"not null;index" json:"property_id"`
	UnitID     *uint `json:"unit_id"`
	TenantID   uint  `gorm:"not null;index" json:"tenant_id"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Tenant   *Tenant   `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`

	LeaseType string    `gorm:"size:20;default:'fixed'" json:"lease_type"` // fixed, month_to_month
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`
	Status    string    `gorm:"size:20;default:'draft';index:idx_leases_owner_status" json:"status"` // draft, pending, active, expired, terminated, renewed

	RentAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rent_amount"`
	RentDueDay int             `gorm:"default:1" json:"rent_due_day"` // day of month, 1-28

	SecurityDeposit         decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"security_deposit"`
	SecurityDepositPaid     bool            `gorm:"default:false" json:"security_deposit_paid"`
	SecurityDepositPaidDate *time.Time      `json:"security_deposit_paid_date"`

	LateFeeType      string          `gorm:"size:20;default:'fixed'" json:"late_fee_type"` // fixed, percent, daily
	LateFeeAmount    decimal.Decimal `gorm:"type:decimal(10,2);default:50" json:"late_fee_amount"`
	LateFeeGraceDays int             `gorm:"default:5" json:"late_fee_grace_days"`

	AutoRenew         bool `gorm:"default:false" json:"auto_renew"`
	RenewalTermMonths int  `gorm:"default:12" json:"renewal_term_months"`

	TerminatedDate    *time.Time `json:"terminated_date"`
	TerminationReason string     `gorm:"type:text" json:"termination_reason"`

	Notes string `gorm:"type:text" json:"notes"`
}

// TableName overrides the table name
func (Lease) TableName() string {
	return "leases"
}

func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// DaysUntilExpiry returns the number of whole days between today and the
// lease end date. Negative once the lease has ended.
func (l *Lease) DaysUntilExpiry(today time.Time) int {
	return int(l.EndDate.Sub(today).Hours() / 24)
}
