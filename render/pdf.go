/*
Package render produces the printable invoice document.

LAYOUT:
  Company block (optional logo from the settings data-URL blob), invoice
  number/dates/status, bill-to block, item table, total. A4 portrait.

MISSING CLIENT:
  An invoice may reference a client that no longer exists; the document
  renders with an "Unknown client" bill-to block rather than failing.
*/
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/felixlvh/invoice/invoice"
)

// Document renders the invoice as PDF bytes. client may be nil when the
// referenced client has been deleted.
func Document(inv invoice.Invoice, client *invoice.Client, settings invoice.Settings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.Number, false)
	pdf.AddPage()

	drawHeader(pdf, inv, settings)
	drawBillTo(pdf, client)
	drawItems(pdf, inv)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, inv invoice.Invoice, settings invoice.Settings) {
	if img, kind, ok := decodeLogo(settings.Logo); ok {
		opts := gofpdf.ImageOptions{ImageType: kind, ReadDpi: true}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(img))
		pdf.ImageOptions("logo", 10, 10, 30, 0, false, opts, 0, "")
		pdf.SetY(10)
		pdf.SetX(45)
	}

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, settings.CompanyName)
	pdf.Ln(8)
	if settings.Address != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(100, 5, settings.Address, "", "L", false)
	}

	pdf.SetY(16)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "INVOICE "+inv.Number, "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, "Date: "+inv.Date.String(), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, "Due: "+inv.DueDate.String(), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, "Status: "+strings.ToUpper(string(inv.Status)), "", 1, "R", false, 0, "")
	pdf.Ln(10)
}

func drawBillTo(pdf *gofpdf.Fpdf, client *invoice.Client) {
	pdf.SetY(55)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 6, "Bill To")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)

	if client == nil {
		pdf.Cell(100, 5, "Unknown client")
		pdf.Ln(12)
		return
	}

	pdf.Cell(100, 5, client.Name)
	pdf.Ln(5)
	if client.Company != "" {
		pdf.Cell(100, 5, client.Company)
		pdf.Ln(5)
	}
	if client.Address != "" {
		pdf.MultiCell(100, 5, client.Address, "", "L", false)
	}
	if client.Email != "" {
		pdf.Cell(100, 5, client.Email)
		pdf.Ln(5)
	}
	pdf.Ln(7)
}

func drawItems(pdf *gofpdf.Fpdf, inv invoice.Invoice) {
	const (
		descW  = 90.0
		qtyW   = 25.0
		priceW = 35.0
		amtW   = 40.0
		rowH   = 7.0
	)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(descW, rowH, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(qtyW, rowH, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(priceW, rowH, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(amtW, rowH, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(descW, rowH, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, rowH, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(priceW, rowH, "$"+item.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(amtW, rowH, "$"+item.Amount().StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(descW+qtyW+priceW, rowH, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(amtW, rowH, "$"+inv.Total.StringFixed(2), "1", 1, "R", false, 0, "")
}

// decodeLogo parses a "data:image/...;base64,..." blob. Returns the raw
// image bytes and the gofpdf image type ("PNG" or "JPG").
func decodeLogo(dataURL string) ([]byte, string, bool) {
	if dataURL == "" {
		return nil, "", false
	}
	var kind string
	switch {
	case strings.HasPrefix(dataURL, "data:image/png;base64,"):
		kind = "PNG"
	case strings.HasPrefix(dataURL, "data:image/jpeg;base64,"), strings.HasPrefix(dataURL, "data:image/jpg;base64,"):
		kind = "JPG"
	default:
		return nil, "", false
	}
	idx := strings.Index(dataURL, ",")
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, "", false
	}
	return raw, kind, true
}
