/*
dto.go - Request payloads and error envelope

Responses reuse the domain types directly: their JSON tags already carry
the persisted wire format, so a separate response DTO layer would only
duplicate them. Requests get their own shapes because create and update
accept different subsets (updates are pointer-field patches).

Structural checks (presence, date format, status vocabulary) are
expressed as validator tags; business rules (due date ordering, item
bounds, email shape) live in the invoice package and run after.
*/
package api

import "github.com/shopspring/decimal"

// =============================================================================
// CLIENT REQUESTS
// =============================================================================

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Company string `json:"company"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Email   *string `json:"email" validate:"omitempty,min=1"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Company *string `json:"company"`
}

// =============================================================================
// INVOICE REQUESTS
// =============================================================================

type ItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type CreateInvoiceRequest struct {
	ClientID string        `json:"clientId" validate:"required"`
	Date     string        `json:"date" validate:"required,datetime=2006-01-02"`
	DueDate  string        `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Status   string        `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	Items    []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest patches an existing invoice. Nil fields are left
// unchanged; Items, when present, replaces the whole sequence. Number
// and total are not accepted - the first is immutable, the second is
// derived.
type UpdateInvoiceRequest struct {
	ClientID *string       `json:"clientId" validate:"omitempty,min=1"`
	Date     *string       `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DueDate  *string       `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Status   *string       `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	Items    []ItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

// =============================================================================
// SETTINGS REQUEST
// =============================================================================

type UpdateSettingsRequest struct {
	CompanyName   *string `json:"companyName"`
	Logo          *string `json:"logo"`
	Address       *string `json:"address"`
	InvoicePrefix *string `json:"invoicePrefix" validate:"omitempty,min=1"`
}

// =============================================================================
// ERROR ENVELOPE
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
