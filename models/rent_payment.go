package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rent payment statuses.
const (
	RentPaymentPending = "pending"
	RentPaymentPartial = "partial"
	RentPaymentPaid    = "paid"
	RentPaymentOverdue = "overdue"
	RentPaymentWaived  = "waived"
)

// RentPayment is one billing-period obligation derived from a lease, keyed
// uniquely by (lease, due date). AmountPaid is derived from the payment
// records and is never hand-edited.
type RentPayment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LeaseID uint      `gorm:"not null;uniqueIndex:idx_rent_payments_lease_due" json:"lease_id"`
	Lease   *Lease    `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
	DueDate time.Time `gorm:"not null;uniqueIndex:idx_rent_payments_lease_due;index" json:"due_date"`

	AmountDue  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount_due"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"amount_paid"`
	Status     string          `gorm:"size:20;default:'pending';index" json:"status"` // pending, partial, paid, overdue, waived

	LateFeeApplied      decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"late_fee_applied"`
	LateFeeWaived       bool            `gorm:"default:false" json:"late_fee_waived"`
	LateFeeWaivedReason string          `gorm:"type:text" json:"late_fee_waived_reason"`

	PaidDate *time.Time `json:"paid_date"`
	Notes    string     `gorm:"type:text" json:"notes"`

	PaymentRecords []PaymentRecord `gorm:"foreignKey:RentPaymentID" json:"payment_records,omitempty"`
}

// TableName overrides the table name
func (RentPayment) TableName() string {
	return "rent_payments"
}

func (p *RentPayment) BalanceDue() decimal.Decimal {
	return p.AmountDue.Add(p.LateFeeApplied).Sub(p.AmountPaid)
}

func (p *RentPayment) IsLate(today time.Time) bool {
	if p.Status == RentPaymentPaid {
		return false
	}
	return p.DueDate.Before(today)
}
