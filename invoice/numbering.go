/*
numbering.go - Invoice number derivation

PURPOSE:
  Derives the next sequential invoice number from the set of existing
  invoices and the configured prefix. Pure function of its inputs.

ALGORITHM:
  1. Strip all non-digit characters from every existing number
  2. Parse the remainder as an integer (empty or unparseable counts as 0)
  3. Take the maximum
  4. Return prefix + (max+1), zero-padded to at least 3 digits

  Numbers at or above 1000 are never truncated, the digit field just
  grows wider: "INV-999" -> "INV-1000".

COLLISION CONTRACT:
  NextNumber itself never verifies non-collision. The store assigns the
  returned value atomically at creation time, computing it from the
  pre-mutation state under its write lock, which is what actually
  guarantees two back-to-back creations get distinct numbers.

SEE ALSO:
  - store/store.go: AddInvoice, the single assignment point
*/
package invoice

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	nonDigits = regexp.MustCompile(`\D`)

	// numberShape is the conceptual wire shape of an assigned number:
	// an upper-case letter prefix followed by at least three digits.
	numberShape = regexp.MustCompile(`^[A-Z]+-\d{3,}$`)
)

// NextNumber returns the next invoice number for the given state.
// Called with no existing invoices it returns prefix + "001".
func NextNumber(invoices []Invoice, settings Settings) string {
	max := 0
	for _, inv := range invoices {
		if n := numericSuffix(inv.Number); n > max {
			max = n
		}
	}
	return FormatNumber(settings.InvoicePrefix, max+1)
}

// FormatNumber renders prefix + n with the digits zero-padded to at
// least 3 places.
func FormatNumber(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// numericSuffix extracts the integer embedded in an invoice number.
// "INV-042" -> 42. Numbers with no digits parse as 0.
func numericSuffix(number string) int {
	digits := nonDigits.ReplaceAllString(number, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// ValidNumber reports whether number has the expected shape and does not
// collide with any existing number. Used when checking imported or
// hand-entered numbers; store-assigned numbers satisfy this by
// construction as long as the prefix is upper-case letters plus "-".
func ValidNumber(number string, existing []string) bool {
	if number == "" {
		return false
	}
	for _, e := range existing {
		if e == number {
			return false
		}
	}
	return numberShape.MatchString(number)
}
