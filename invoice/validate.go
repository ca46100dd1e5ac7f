/*
validate.go - Field validation for clients and invoice drafts

PURPOSE:
  Validation is a view-layer responsibility: the store never validates
  and never rejects a mutation. These functions give the view layer one
  authoritative place to check a record before committing it.

RULES:
  Client:  name required, email required with a simple local@domain shape
  Invoice: client reference required, issue date required, due date
           required and not before the issue date, at least one item,
           every item with a non-empty description, quantity >= 1 and
           price >= 0

SEE ALSO:
  - errors.go: ValidationError / ErrValidation
  - api/handlers.go: The caller, before each store mutation
*/
package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// emailShape is deliberately loose: something non-empty, an "@",
// something non-empty. Full RFC 5322 checking is not the goal.
func emailShape(s string) bool {
	at := -1
	for i, r := range s {
		if r == '@' {
			if at >= 0 {
				return false
			}
			at = i
		}
		if r == ' ' {
			return false
		}
	}
	return at > 0 && at < len(s)-1
}

// Validate checks the client's required fields.
func (c Client) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if c.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailShape(c.Email) {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	return nil
}

// ValidateDraft checks an invoice as edited by the user, before the
// store assigns identity and number. The zero decimal checks mirror the
// edit form: quantity at least 1, price never negative.
func ValidateDraft(inv Invoice) error {
	if inv.ClientID == "" {
		return &ValidationError{Field: "clientId", Message: "client is required"}
	}
	if inv.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "date is required"}
	}
	if inv.DueDate.IsZero() {
		return &ValidationError{Field: "dueDate", Message: "due date is required"}
	}
	if inv.DueDate.Before(inv.Date) {
		return &ValidationError{Field: "dueDate", Message: "due date cannot be before invoice date"}
	}
	if inv.Status != "" && !inv.Status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", inv.Status)}
	}
	if len(inv.Items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	one := decimal.NewFromInt(1)
	for i, item := range inv.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.Description == "" {
			return &ValidationError{Field: field + ".description", Message: "item description is required"}
		}
		if item.Quantity.LessThan(one) {
			return &ValidationError{Field: field + ".quantity", Message: "quantity must be at least 1"}
		}
		if item.Price.IsNegative() {
			return &ValidationError{Field: field + ".price", Message: "price cannot be negative"}
		}
	}
	return nil
}
