package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixlvh/invoice/invoice"
	"github.com/felixlvh/invoice/render"
)

func sampleInvoice() invoice.Invoice {
	items := []invoice.LineItem{
		{Description: "Design work", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromFloat(10.5)},
		{Description: "Hosting", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(5)},
	}
	return invoice.Invoice{
		ID:       "inv-1",
		Number:   "INV-001",
		ClientID: "cli-1",
		Date:     invoice.NewDate(2025, time.March, 1),
		DueDate:  invoice.NewDate(2025, time.March, 31),
		Status:   invoice.StatusSent,
		Items:    items,
		Total:    invoice.Total(items),
	}
}

func sampleSettings() invoice.Settings {
	return invoice.Settings{
		CompanyName:   "Felix LLC",
		Address:       "1 Main St\nSpringfield",
		InvoicePrefix: "INV-",
	}
}

func TestDocument(t *testing.T) {
	client := &invoice.Client{
		ID:      "cli-1",
		Name:    "Acme",
		Email:   "billing@acme.test",
		Company: "Acme Corp",
		Address: "42 Side St",
	}

	doc, err := render.Document(sampleInvoice(), client, sampleSettings())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
	assert.Greater(t, len(doc), 500)
}

func TestDocument_MissingClient(t *testing.T) {
	doc, err := render.Document(sampleInvoice(), nil, sampleSettings())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestDocument_IgnoresUnparseableLogo(t *testing.T) {
	settings := sampleSettings()
	settings.Logo = "data:image/png;base64,%%%not-base64%%%"

	doc, err := render.Document(sampleInvoice(), nil, settings)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}
