package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCheck        = "check"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodOnline       = "online"
	PaymentMethodOther        = "other"
)

// PaymentRecord is one discrete payment applied against a RentPayment.
// Records are immutable once created, except for the linked ledger
// transaction set when the record is written.
type PaymentRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RentPaymentID uint `gorm:"not null;index" json:"rent_payment_id"`

	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate     time.Time       `gorm:"not null" json:"payment_date"`
	PaymentMethod   string          `gorm:"size:20;default:'other'" json:"payment_method"` // cash, check, bank_transfer, credit_card, online, other
	ReferenceNumber string          `gorm:"size:100" json:"reference_number"`
	Notes           string          `gorm:"type:text" json:"notes"`

	TransactionID *uint        `json:"transaction_id"`
	Transaction   *Transaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
}

// TableName overrides the table name
func (PaymentRecord) TableName() string {
	return "payment_records"
}
