package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewReceiptReference generates a reference number for a recorded payment
// when the caller did not supply one (cash payments, mostly).
func NewReceiptReference(t time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("RCPT-%d%02d-%s", t.Year(), int(t.Month()), short)
}
