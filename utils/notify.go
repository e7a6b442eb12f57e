package utils

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// NotifierInterface is the outbound notification dispatcher. Callers treat
// it as fire-and-forget: a failed send is logged by the caller, never
// propagated into the rent ledger.
type NotifierInterface interface {
	SendRentReminder(email, tenantName, propertyName string, amount decimal.Decimal, dueDate time.Time) error
	SendRentDueNotice(email, tenantName, propertyName string, amount decimal.Decimal) error
	SendLateNotice(email, tenantName, propertyName string, balance decimal.Decimal, daysOverdue int) error
	SendLeaseExpiryWarning(email, tenantName, propertyName string, endDate time.Time, daysLeft int) error
}

// LogNotifier writes every notification to the process log. It stands in
// for a real email dispatcher in development and tests.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendRentReminder(email, tenantName, propertyName string, amount decimal.Decimal, dueDate time.Time) error {
	log.Printf("notify: rent reminder to %s (%s): $%s due %s at %s",
		email, tenantName, amount.StringFixed(2), dueDate.Format("2006-01-02"), propertyName)
	return nil
}

func (n *LogNotifier) SendRentDueNotice(email, tenantName, propertyName string, amount decimal.Decimal) error {
	log.Printf("notify: rent due notice to %s (%s): $%s due today at %s",
		email, tenantName, amount.StringFixed(2), propertyName)
	return nil
}

func (n *LogNotifier) SendLateNotice(email, tenantName, propertyName string, balance decimal.Decimal, daysOverdue int) error {
	log.Printf("notify: late notice to %s (%s): $%s outstanding, %d days overdue at %s",
		email, tenantName, balance.StringFixed(2), daysOverdue, propertyName)
	return nil
}

func (n *LogNotifier) SendLeaseExpiryWarning(email, tenantName, propertyName string, endDate time.Time, daysLeft int) error {
	log.Printf("notify: lease expiry warning to %s (%s): lease at %s ends %s (%d days)",
		email, tenantName, propertyName, endDate.Format("2006-01-02"), daysLeft)
	return nil
}
