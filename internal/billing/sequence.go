package billing

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	invoicePrefix      = "HG"
	firstInvoiceNumber = "HG0100"
)

// NextInvoiceNumber derives the next invoice number from the most recently
// created bill's number. Anything that does not look like an HG-sequenced
// number restarts the sequence at HG0100. Padding is a minimum width of 4,
// so the number keeps growing past HG9999 (HG10000, HG10001, ...).
//
// This is a pure read-then-compute step: two callers computing from the same
// snapshot get the same number, and the unique constraint on invoice_number
// is what catches the collision at insert time.
func NextInvoiceNumber(last string) string {
	if !strings.HasPrefix(last, invoicePrefix) {
		return firstInvoiceNumber
	}
	n, err := strconv.Atoi(last[len(invoicePrefix):])
	if err != nil || n < 0 {
		return firstInvoiceNumber
	}
	return fmt.Sprintf("%s%04d", invoicePrefix, n+1)
}
