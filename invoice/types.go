/*
Package invoice provides the core invoicing domain model and engines.

PURPOSE:
  This package contains the entity shapes and the two pure engines of the
  system: invoice numbering and totals calculation. It has no knowledge of
  persistence or HTTP - the store package owns committed state, the api
  package owns the user-facing surface.

KEY CONCEPTS IN THIS FILE (types.go):
  - Client: A billable party (name, email, optional contact fields)
  - LineItem: One description/quantity/price triple owned by an Invoice
  - Invoice: A numbered document with an ordered item sequence
  - Settings: Process-wide singleton (company identity, number prefix)
  - Date: A day-granularity date serialized as "2006-01-02"

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all money, never float64
  2. Type Safety: Strong typing for IDs prevents mixing client/invoice IDs
  3. Purity: Numbering and totals are side-effect-free functions
  4. Derived totals: Invoice.Total is always recomputed from Items by the
     store; it is never trusted from a caller

SEE ALSO:
  - numbering.go: Next-invoice-number derivation
  - totals.go: Line item summation
  - validate.go: Field validation (view-layer responsibility)
  - errors.go: Sentinel and structured errors
*/
package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ClientID string
type InvoiceID string

// =============================================================================
// STATUS - Invoice lifecycle
// =============================================================================

type Status string

const (
	StatusDraft   Status = "draft"   // Being edited, not yet sent
	StatusSent    Status = "sent"    // Delivered, awaiting payment
	StatusPaid    Status = "paid"    // Payment received
	StatusOverdue Status = "overdue" // Past due date without payment
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// =============================================================================
// DATE - Day-granularity date, serialized as "2006-01-02"
// =============================================================================

const dateLayout = "2006-01-02"

type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) Before(other Date) bool { return d.normalize().Before(other.normalize()) }
func (d Date) After(other Date) bool  { return d.normalize().After(other.normalize()) }
func (d Date) Equal(other Date) bool  { return d.normalize().Equal(other.normalize()) }
func (d Date) IsZero() bool           { return d.Time.IsZero() }
func (d Date) AddDays(n int) Date     { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) String() string         { return d.Time.Format(dateLayout) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(`"`+dateLayout+`"`, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is a billable party. Deleting a client does not cascade to
// invoices referencing it; lookups of a missing client render "unknown".
type Client struct {
	ID      ClientID `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone,omitempty"`
	Address string   `json:"address,omitempty"`
	Company string   `json:"company,omitempty"`
}

// =============================================================================
// LINE ITEM - Owned by exactly one invoice, by value
// =============================================================================

type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Amount is quantity times unit price.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.Price)
}

// =============================================================================
// INVOICE
// =============================================================================

// Invoice is a numbered billing document. ID and Number are assigned at
// creation and immutable thereafter; Total is derived from Items and
// recomputed by the store on every commit.
type Invoice struct {
	ID        InvoiceID       `json:"id"`
	Number    string          `json:"number"`
	ClientID  ClientID        `json:"clientId"`
	Date      Date            `json:"date"`
	DueDate   Date            `json:"dueDate"`
	Status    Status          `json:"status"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// IsPastDue reports whether the invoice is unpaid and past its due date.
func (inv Invoice) IsPastDue(today Date) bool {
	if inv.Status == StatusPaid {
		return false
	}
	return !inv.DueDate.IsZero() && inv.DueDate.Before(today)
}

// =============================================================================
// SETTINGS - Process-wide singleton
// =============================================================================

const DefaultPrefix = "INV-"

// Settings holds company identity and numbering configuration.
// Logo is a self-contained data URL (e.g. "data:image/png;base64,...").
// LastInvoiceNumber records the most recently assigned invoice number;
// nil until the first invoice is created.
type Settings struct {
	CompanyName       string  `json:"companyName"`
	Logo              string  `json:"logo,omitempty"`
	Address           string  `json:"address,omitempty"`
	InvoicePrefix     string  `json:"invoicePrefix"`
	LastInvoiceNumber *string `json:"lastInvoiceNumber"`
}

// DefaultSettings returns the settings used when no persisted state exists.
func DefaultSettings() Settings {
	return Settings{InvoicePrefix: DefaultPrefix}
}
