package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/leaselog/models"
)

func TestRecomputePayment(t *testing.T) {
	base := models.RentPayment{
		AmountDue:      decimal.NewFromInt(1000),
		LateFeeApplied: decimal.Zero,
		Status:         models.RentPaymentPending,
	}

	t.Run("No Records Leaves Status Alone", func(t *testing.T) {
		payment := base
		payment.Status = models.RentPaymentOverdue
		RecomputePayment(&payment, nil, date(2024, time.March, 5))
		assert.Equal(t, models.RentPaymentOverdue, payment.Status)
		assert.True(t, payment.AmountPaid.IsZero())
		assert.Nil(t, payment.PaidDate)
	})

	t.Run("Partial Then Paid", func(t *testing.T) {
		payment := base
		records := []models.PaymentRecord{{Amount: decimal.NewFromInt(400)}}
		RecomputePayment(&payment, records, date(2024, time.March, 5))
		assert.Equal(t, models.RentPaymentPartial, payment.Status)
		assert.True(t, payment.BalanceDue().Equal(decimal.NewFromInt(600)))

		records = append(records, models.PaymentRecord{Amount: decimal.NewFromInt(600)})
		RecomputePayment(&payment, records, date(2024, time.March, 9))
		assert.Equal(t, models.RentPaymentPaid, payment.Status)
		assert.True(t, payment.BalanceDue().IsZero())
		assert.Equal(t, "2024-03-09", payment.PaidDate.Format("2006-01-02"))
	})

	t.Run("Late Fee Raises The Bar", func(t *testing.T) {
		payment := base
		payment.LateFeeApplied = decimal.NewFromInt(50)
		records := []models.PaymentRecord{{Amount: decimal.NewFromInt(1000)}}
		RecomputePayment(&payment, records, date(2024, time.March, 5))
		assert.Equal(t, models.RentPaymentPartial, payment.Status)
		assert.True(t, payment.BalanceDue().Equal(decimal.NewFromInt(50)))
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("Partial Then Paid", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, nil)
		payment := seedRentPayment(t, db, lease, date(2024, time.March, 1), decimal.NewFromInt(1000))

		updated, err := RecordPayment(db, owner.ID, payment.ID, PaymentInput{
			Amount:        decimal.NewFromInt(400),
			PaymentDate:   date(2024, time.March, 3),
			PaymentMethod: models.PaymentMethodCash,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.RentPaymentPartial, updated.Status)
		assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(400)))
		assert.True(t, updated.BalanceDue().Equal(decimal.NewFromInt(600)))
		assert.Nil(t, updated.PaidDate)

		updated, err = RecordPayment(db, owner.ID, payment.ID, PaymentInput{
			Amount:        decimal.NewFromInt(600),
			PaymentDate:   date(2024, time.March, 9),
			PaymentMethod: models.PaymentMethodBankTransfer,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.RentPaymentPaid, updated.Status)
		assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, "2024-03-09", updated.PaidDate.Format("2006-01-02"))
	})

	t.Run("Amount Paid Always Equals Sum Of Records", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, nil)
		payment := seedRentPayment(t, db, lease, date(2024, time.March, 1), decimal.NewFromInt(1000))

		amounts := []int64{100, 250, 50, 300}
		for _, a := range amounts {
			_, err := RecordPayment(db, owner.ID, payment.ID, PaymentInput{
				Amount:      decimal.NewFromInt(a),
				PaymentDate: date(2024, time.March, 3),
			})
			assert.NoError(t, err)
		}

		var fresh models.RentPayment
		db.Preload("PaymentRecords").First(&fresh, payment.ID)

		sum := decimal.Zero
		for _, r := range fresh.PaymentRecords {
			sum = sum.Add(r.Amount)
		}
		assert.Len(t, fresh.PaymentRecords, 4)
		assert.True(t, fresh.AmountPaid.Equal(sum), "amount_paid %s != sum of records %s", fresh.AmountPaid, sum)
	})

	t.Run("Overpayment After Paid Keeps Paid Status", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, nil)
		payment := seedRentPayment(t, db, lease, date(2024, time.March, 1), decimal.NewFromInt(1000))

		_, err := RecordPayment(db, owner.ID, payment.ID, PaymentInput{
			Amount:      decimal.NewFromInt(1000),
			PaymentDate: date(2024, time.March, 1),
		})
		assert.NoError(t, err)

		// Nothing rejects a payment against an already-paid row; it is
		// re-aggregated and the row stays paid.
		updated, err := RecordPayment(db, owner.ID, payment.ID, PaymentInput{
			Amount:      decimal.NewFromInt(200),
			PaymentDate: date(2024, time.March, 2),
		})
		assert.NoError(t, err)
		assert.Equal(t, models.RentPaymentPaid, updated.Status)
		assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(1200)))
	})

	t.Run("Writes Linked Ledger Transaction", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, nil)
		payment := seedRentPayment(t, db, lease, date(2024, time.March, 1), decimal.NewFromInt(1000))

		_, err := RecordPayment(db, owner.ID, payment.ID, PaymentInput{
			Amount:        decimal.NewFromInt(1000),
			PaymentDate:   date(2024, time.March, 1),
			PaymentMethod: models.PaymentMethodCheck,
		})
		assert.NoError(t, err)

		var record models.PaymentRecord
		assert.NoError(t, db.Where("rent_payment_id = ?", payment.ID).First(&record).Error)
		assert.NotNil(t, record.TransactionID)
		assert.NotEmpty(t, record.ReferenceNumber)

		var txn models.Transaction
		assert.NoError(t, db.First(&txn, *record.TransactionID).Error)
		assert.Equal(t, models.TransactionIncome, txn.Type)
		assert.Equal(t, owner.ID, txn.OwnerID)
		assert.True(t, txn.Amount.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, "Rent payment for March 2024", txn.Description)
	})

	t.Run("Rejects Non-Positive Amount", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, nil)
		payment := seedRentPayment(t, db, lease, date(2024, time.March, 1), decimal.NewFromInt(1000))

		_, err := RecordPayment(db, owner.ID, payment.ID, PaymentInput{
			Amount:      decimal.NewFromInt(-5),
			PaymentDate: date(2024, time.March, 1),
		})
		assert.Error(t, err)
		svcErr, ok := err.(*Error)
		assert.True(t, ok)
		assert.Equal(t, CodeValidation, svcErr.Code)
		assert.Contains(t, svcErr.Fields, "amount")

		var count int64
		db.Model(&models.PaymentRecord{}).Count(&count)
		assert.Equal(t, int64(0), count, "no record may be written on a rejected input")
	})

	t.Run("Cross Owner Fails Closed", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		other := seedLandlord(t, db, "b@example.com")
		lease := seedLease(t, db, owner.ID, nil)
		payment := seedRentPayment(t, db, lease, date(2024, time.March, 1), decimal.NewFromInt(1000))

		_, err := RecordPayment(db, other.ID, payment.ID, PaymentInput{
			Amount:      decimal.NewFromInt(100),
			PaymentDate: date(2024, time.March, 1),
		})
		assert.Error(t, err)
		svcErr, ok := err.(*Error)
		assert.True(t, ok)
		assert.Equal(t, CodeNotFound, svcErr.Code)
	})
}
