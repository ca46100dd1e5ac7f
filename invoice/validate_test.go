package invoice_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixlvh/invoice/invoice"
)

func validDraft() invoice.Invoice {
	return invoice.Invoice{
		ClientID: "client-1",
		Date:     invoice.NewDate(2025, time.March, 1),
		DueDate:  invoice.NewDate(2025, time.March, 31),
		Status:   invoice.StatusDraft,
		Items:    []invoice.LineItem{item(1, 100)},
	}
}

// =============================================================================
// CLIENT VALIDATION
// =============================================================================

func TestClientValidate(t *testing.T) {
	tests := []struct {
		name      string
		client    invoice.Client
		wantField string
	}{
		{
			name:   "valid client",
			client: invoice.Client{Name: "Acme", Email: "billing@acme.test"},
		},
		{
			name:      "missing name",
			client:    invoice.Client{Email: "billing@acme.test"},
			wantField: "name",
		},
		{
			name:      "missing email",
			client:    invoice.Client{Name: "Acme"},
			wantField: "email",
		},
		{
			name:      "email without domain",
			client:    invoice.Client{Name: "Acme", Email: "billing@"},
			wantField: "email",
		},
		{
			name:      "email without local part",
			client:    invoice.Client{Name: "Acme", Email: "@acme.test"},
			wantField: "email",
		},
		{
			name:      "email with two at signs",
			client:    invoice.Client{Name: "Acme", Email: "a@b@c"},
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.client.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, invoice.IsValidation(err))
			var verr *invoice.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

// =============================================================================
// INVOICE DRAFT VALIDATION
// =============================================================================

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*invoice.Invoice)
		wantField string
	}{
		{
			name:   "valid draft",
			mutate: func(inv *invoice.Invoice) {},
		},
		{
			name:      "missing client",
			mutate:    func(inv *invoice.Invoice) { inv.ClientID = "" },
			wantField: "clientId",
		},
		{
			name:      "due date before issue date",
			mutate:    func(inv *invoice.Invoice) { inv.DueDate = inv.Date.AddDays(-1) },
			wantField: "dueDate",
		},
		{
			name:   "due date equal to issue date is allowed",
			mutate: func(inv *invoice.Invoice) { inv.DueDate = inv.Date },
		},
		{
			name:      "empty item list",
			mutate:    func(inv *invoice.Invoice) { inv.Items = nil },
			wantField: "items",
		},
		{
			name:      "item without description",
			mutate:    func(inv *invoice.Invoice) { inv.Items[0].Description = "" },
			wantField: "items[0].description",
		},
		{
			name:      "quantity below one",
			mutate:    func(inv *invoice.Invoice) { inv.Items[0].Quantity = decimal.Zero },
			wantField: "items[0].quantity",
		},
		{
			name:      "negative price",
			mutate:    func(inv *invoice.Invoice) { inv.Items[0].Price = decimal.NewFromInt(-1) },
			wantField: "items[0].price",
		},
		{
			name:   "zero price is allowed",
			mutate: func(inv *invoice.Invoice) { inv.Items[0].Price = decimal.Zero },
		},
		{
			name:      "unknown status",
			mutate:    func(inv *invoice.Invoice) { inv.Status = "archived" },
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)
			err := invoice.ValidateDraft(draft)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *invoice.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

// =============================================================================
// STATUS & DATES
// =============================================================================

func TestStatusValid(t *testing.T) {
	assert.True(t, invoice.StatusDraft.Valid())
	assert.True(t, invoice.StatusSent.Valid())
	assert.True(t, invoice.StatusPaid.Valid())
	assert.True(t, invoice.StatusOverdue.Valid())
	assert.False(t, invoice.Status("archived").Valid())
	assert.False(t, invoice.Status("").Valid())
}

func TestInvoice_IsPastDue(t *testing.T) {
	today := invoice.NewDate(2025, time.June, 15)

	inv := validDraft()
	inv.Status = invoice.StatusSent
	inv.DueDate = invoice.NewDate(2025, time.June, 14)
	assert.True(t, inv.IsPastDue(today))

	inv.DueDate = today
	assert.False(t, inv.IsPastDue(today))

	inv.DueDate = invoice.NewDate(2025, time.June, 1)
	inv.Status = invoice.StatusPaid
	assert.False(t, inv.IsPastDue(today), "paid invoices are never past due")
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := invoice.NewDate(2025, time.March, 9)

	blob, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(blob))

	var back invoice.Date
	require.NoError(t, back.UnmarshalJSON(blob))
	assert.True(t, back.Equal(d))

	var zero invoice.Date
	require.NoError(t, zero.UnmarshalJSON([]byte(`""`)))
	assert.True(t, zero.IsZero())
}
