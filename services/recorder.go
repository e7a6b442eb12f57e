package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/models"
	"github.com/yourusername/leaselog/utils"
)

// PaymentInput describes one payment to record against a RentPayment.
type PaymentInput struct {
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   string
	ReferenceNumber string
	Notes           string
}

var validPaymentMethods = map[string]bool{
	models.PaymentMethodCash:         true,
	models.PaymentMethodCheck:        true,
	models.PaymentMethodBankTransfer: true,
	models.PaymentMethodCreditCard:   true,
	models.PaymentMethodOnline:       true,
	models.PaymentMethodOther:        true,
}

// RecomputePayment re-aggregates amount_paid from all payment records and
// derives status and paid_date. It is a full re-aggregation, not an
// incremental add, so re-running it is harmless. With no paid amount the
// status is left untouched (typically pending or overdue).
func RecomputePayment(payment *models.RentPayment, records []models.PaymentRecord, triggerDate time.Time) {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	payment.AmountPaid = total

	owed := payment.AmountDue.Add(payment.LateFeeApplied)
	switch {
	case total.IsZero():
		// leave status as is
	case total.GreaterThanOrEqual(owed):
		payment.Status = models.RentPaymentPaid
		d := triggerDate
		payment.PaidDate = &d
	default:
		payment.Status = models.RentPaymentPartial
	}
}

// RecordPayment applies one payment against a rent payment: it inserts a
// PaymentRecord, writes the matching income Transaction to the ledger, and
// re-aggregates the parent row, all inside one transaction so a crash can
// never leave a partial ledger state. Over-payments against an already paid
// row are accepted and re-aggregated; the row stays paid.
func RecordPayment(db *gorm.DB, ownerID, paymentID uint, in PaymentInput) (*models.RentPayment, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrValidation(map[string]string{"amount": "Amount must be greater than zero."})
	}

	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentMethodOther
	}
	if !validPaymentMethods[method] {
		return nil, ErrValidation(map[string]string{"payment_method": "Unknown payment method."})
	}

	reference := in.ReferenceNumber
	if reference == "" {
		reference = utils.NewReceiptReference(in.PaymentDate)
	}

	var result *models.RentPayment
	err := db.Transaction(func(tx *gorm.DB) error {
		payment, err := getRentPaymentLocked(tx, ownerID, paymentID)
		if err != nil {
			return err
		}

		record := models.PaymentRecord{
			RentPaymentID:   payment.ID,
			Amount:          in.Amount,
			PaymentDate:     in.PaymentDate,
			PaymentMethod:   method,
			ReferenceNumber: reference,
			Notes:           in.Notes,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		lease := payment.Lease
		txn := models.Transaction{
			OwnerID:         lease.OwnerID,
			Type:            models.TransactionIncome,
			Category:        "Rent",
			PropertyID:      &lease.PropertyID,
			UnitID:          lease.UnitID,
			TenantID:        &lease.TenantID,
			LeaseID:         &payment.LeaseID,
			Amount:          in.Amount,
			Date:            in.PaymentDate,
			Description:     fmt.Sprintf("Rent payment for %s", payment.DueDate.Format("January 2006")),
			PaymentMethod:   method,
			ReferenceNumber: reference,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if err := tx.Model(&record).Update("transaction_id", txn.ID).Error; err != nil {
			return err
		}

		var records []models.PaymentRecord
		if err := tx.Where("rent_payment_id = ?", payment.ID).Find(&records).Error; err != nil {
			return err
		}

		RecomputePayment(payment, records, in.PaymentDate)
		updates := map[string]interface{}{
			"amount_paid": payment.AmountPaid,
			"status":      payment.Status,
			"paid_date":   payment.PaidDate,
		}
		if err := tx.Model(&models.RentPayment{}).Where("id = ?", payment.ID).Updates(updates).Error; err != nil {
			return err
		}

		payment.PaymentRecords = records
		result = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
