package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is a cross-cutting income/expense ledger entry. The rent core
// writes one per recorded payment; bank imports and manual entries share the
// same table.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID uint   `gorm:"not null;index" json:"owner_id"`
	Type    string `gorm:"size:10;not null" json:"type"` // income, expense

	Category   string `gorm:"size:100" json:"category"`
	PropertyID *uint  `gorm:"index" json:"property_id"`
	UnitID     *uint  `json:"unit_id"`
	TenantID   *uint  `json:"tenant_id"`
	LeaseID    *uint  `gorm:"index" json:"lease_id"`

	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date            time.Time       `gorm:"not null;index" json:"date"`
	Description     string          `gorm:"size:255" json:"description"`
	PaymentMethod   string          `gorm:"size:20" json:"payment_method"`
	ReferenceNumber string          `gorm:"size:100" json:"reference_number"`
}

// TableName overrides the table name
func (Transaction) TableName() string {
	return "transactions"
}
