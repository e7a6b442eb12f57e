package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/models"
)

var hundred = decimal.NewFromInt(100)

// ComputeLateFee returns the fee owed on an overdue payment under the
// lease's late fee policy. Daily fees accrue only once the grace period has
// elapsed; inside it the result is zero.
func ComputeLateFee(lease *models.Lease, payment *models.RentPayment, today time.Time) decimal.Decimal {
	switch lease.LateFeeType {
	case models.LateFeeFixed:
		return lease.LateFeeAmount
	case models.LateFeePercent:
		return payment.AmountDue.Mul(lease.LateFeeAmount).Div(hundred)
	case models.LateFeeDaily:
		daysLate := int(today.Sub(payment.DueDate).Hours()/24) - lease.LateFeeGraceDays
		if daysLate > 0 {
			return lease.LateFeeAmount.Mul(decimal.NewFromInt(int64(daysLate)))
		}
	}
	return decimal.Zero
}

// ApplyLateFee charges the lease's late fee policy onto a payment at most
// once. A waived row is never charged again and is returned unchanged. A
// daily fee that computes to zero writes nothing, so a later invocation can
// still charge the row once it is past the grace period.
func ApplyLateFee(db *gorm.DB, ownerID, paymentID uint, today time.Time) (*models.RentPayment, error) {
	payment, err := GetRentPayment(db, ownerID, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.LateFeeApplied.IsPositive() {
		return nil, &Error{Code: CodeFeeAlreadyApplied, Message: "Late fee has already been applied."}
	}
	if payment.LateFeeWaived {
		return payment, nil
	}

	fee := ComputeLateFee(payment.Lease, payment, today)
	if fee.IsZero() {
		return payment, nil
	}

	if err := db.Model(payment).Update("late_fee_applied", fee).Error; err != nil {
		return nil, err
	}
	payment.LateFeeApplied = fee
	return payment, nil
}

// WaiveLateFee zeroes any applied fee and marks the row so the evaluator
// never charges it again.
func WaiveLateFee(db *gorm.DB, ownerID, paymentID uint, reason string) (*models.RentPayment, error) {
	payment, err := GetRentPayment(db, ownerID, paymentID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"late_fee_applied":       decimal.Zero,
		"late_fee_waived":        true,
		"late_fee_waived_reason": reason,
	}
	if err := db.Model(payment).Updates(updates).Error; err != nil {
		return nil, err
	}

	payment.LateFeeApplied = decimal.Zero
	payment.LateFeeWaived = true
	payment.LateFeeWaivedReason = reason
	return payment, nil
}
