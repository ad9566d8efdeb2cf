package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateInvoiceNumber returns a receipt identifier of the form
// INV-20231027-1A2B3C4D. The random suffix comes from a UUID so two
// registers issuing at the same second cannot collide.
func GenerateInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("INV-%s-%s", InvoiceDate(now), suffix)
}
