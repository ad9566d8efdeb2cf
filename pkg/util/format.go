package util

import (
	"fmt"
	"strconv"
	"time"
)

// FormatIDR renders a whole-rupiah amount as "Rp15.000" with dot thousand
// separators, the convention used on receipts and the terminal UI.
func FormatIDR(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if negative {
		return "-Rp" + string(out)
	}
	return "Rp" + string(out)
}

// FormatEpoch renders an epoch-second timestamp in local time, e.g.
// "27 Oktober 2023 15.01" style is left to the caller locale; this uses a
// fixed unambiguous layout.
func FormatEpoch(epoch int64) string {
	if epoch == 0 {
		return ""
	}
	return time.Unix(epoch, 0).Format("2 January 2006 15:04")
}

// ClampQuantity parses a raw quantity input and clamps it to [min, max].
// Unparseable input falls back to min.
func ClampQuantity(raw string, min, max int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return min
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// InvoiceDate is the yyyymmdd component of invoice numbers.
func InvoiceDate(t time.Time) string {
	return fmt.Sprintf("%04d%02d%02d", t.Year(), int(t.Month()), t.Day())
}
