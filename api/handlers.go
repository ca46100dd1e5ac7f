/*
handlers.go - HTTP handlers for the invoicing API

PURPOSE:
  Exposes the persisted store via REST. Handles HTTP request/response,
  JSON serialization, and input validation, then delegates to the store.
  All validation happens here, before any mutation - the store itself
  never validates ("garbage in, garbage stored" is its contract, this
  layer is what keeps the garbage out).

ENDPOINTS:
  Clients:
    GET    /api/clients            List all clients
    POST   /api/clients            Create client
    GET    /api/clients/{id}       Get client
    PUT    /api/clients/{id}       Patch client
    DELETE /api/clients/{id}       Delete client

  Invoices:
    GET    /api/invoices           List all invoices
    POST   /api/invoices           Create invoice (number auto-assigned)
    GET    /api/invoices/{id}      Get invoice
    PUT    /api/invoices/{id}      Patch invoice (total recomputed)
    DELETE /api/invoices/{id}      Delete invoice
    GET    /api/invoices/{id}/pdf  Printable document

  Settings / dashboard:
    GET    /api/settings           Singleton settings
    PUT    /api/settings           Patch settings
    GET    /api/summary            Dashboard aggregates

ERROR HANDLING:
  - 400: Structural or field validation failure
  - 404: Unknown client/invoice identifier
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/felixlvh/invoice/invoice"
	"github.com/felixlvh/invoice/render"
	"github.com/felixlvh/invoice/store"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *store.Store
	validate *validator.Validate
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(st *store.Store) *Handler {
	return &Handler{
		Store:    st,
		validate: validator.New(),
	}
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Clients())
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	draft := invoice.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Company: req.Company,
	}
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	c, err := h.Store.AddClient(r.Context(), store.ClientData{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Company: req.Company,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create client", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id := invoice.ClientID(chi.URLParam(r, "id"))
	c, err := h.Store.Client(id)
	if err != nil {
		writeNotFoundOr500(w, "Client not found", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := invoice.ClientID(chi.URLParam(r, "id"))

	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	// Validate the merged record before committing the patch.
	current, err := h.Store.Client(id)
	if err != nil {
		writeNotFoundOr500(w, "Client not found", err)
		return
	}
	merged := current
	applyIfSet(&merged.Name, req.Name)
	applyIfSet(&merged.Email, req.Email)
	applyIfSet(&merged.Phone, req.Phone)
	applyIfSet(&merged.Address, req.Address)
	applyIfSet(&merged.Company, req.Company)
	if err := merged.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	c, err := h.Store.UpdateClient(r.Context(), id, store.ClientPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Company: req.Company,
	})
	if err != nil {
		writeNotFoundOr500(w, "Client not found", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := invoice.ClientID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteClient(r.Context(), id); err != nil {
		writeNotFoundOr500(w, "Client not found", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// INVOICE HANDLERS
// =============================================================================

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Invoices())
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	date, _ := invoice.ParseDate(req.Date)
	dueDate, _ := invoice.ParseDate(req.DueDate)
	items := toLineItems(req.Items)

	draft := invoice.Invoice{
		ClientID: invoice.ClientID(req.ClientID),
		Date:     date,
		DueDate:  dueDate,
		Status:   invoice.Status(req.Status),
		Items:    items,
	}
	if err := invoice.ValidateDraft(draft); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	inv, err := h.Store.AddInvoice(r.Context(), store.InvoiceData{
		ClientID: draft.ClientID,
		Date:     draft.Date,
		DueDate:  draft.DueDate,
		Status:   draft.Status,
		Items:    items,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create invoice", err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := invoice.InvoiceID(chi.URLParam(r, "id"))
	inv, err := h.Store.Invoice(id)
	if err != nil {
		writeNotFoundOr500(w, "Invoice not found", err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := invoice.InvoiceID(chi.URLParam(r, "id"))

	var req UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	current, err := h.Store.Invoice(id)
	if err != nil {
		writeNotFoundOr500(w, "Invoice not found", err)
		return
	}

	patch, merged, err := buildInvoicePatch(current, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}
	if err := invoice.ValidateDraft(merged); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	inv, err := h.Store.UpdateInvoice(r.Context(), id, patch)
	if err != nil {
		writeNotFoundOr500(w, "Invoice not found", err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := invoice.InvoiceID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteInvoice(r.Context(), id); err != nil {
		writeNotFoundOr500(w, "Invoice not found", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InvoicePDF renders the printable document for an invoice. A missing
// client reference renders as "unknown" rather than failing.
func (h *Handler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	id := invoice.InvoiceID(chi.URLParam(r, "id"))
	inv, err := h.Store.Invoice(id)
	if err != nil {
		writeNotFoundOr500(w, "Invoice not found", err)
		return
	}

	var client *invoice.Client
	if c, err := h.Store.Client(inv.ClientID); err == nil {
		client = &c
	}

	doc, err := render.Document(inv, client, h.Store.Settings())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render invoice", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "invoice-"+inv.Number+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// =============================================================================
// SETTINGS & SUMMARY HANDLERS
// =============================================================================

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Settings())
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	settings, err := h.Store.UpdateSettings(r.Context(), store.SettingsPatch{
		CompanyName:   req.CompanyName,
		Logo:          req.Logo,
		Address:       req.Address,
		InvoicePrefix: req.InvoicePrefix,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update settings", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Summary())
}

// =============================================================================
// HELPERS
// =============================================================================

func toLineItems(items []ItemRequest) []invoice.LineItem {
	out := make([]invoice.LineItem, len(items))
	for i, it := range items {
		out[i] = invoice.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
		}
	}
	return out
}

// buildInvoicePatch converts the request into a store patch and the
// merged invoice used for pre-commit validation. Date strings have
// already passed the datetime tag, so parse errors are unreachable here.
func buildInvoicePatch(current invoice.Invoice, req UpdateInvoiceRequest) (store.InvoicePatch, invoice.Invoice, error) {
	var patch store.InvoicePatch
	merged := current

	if req.ClientID != nil {
		id := invoice.ClientID(*req.ClientID)
		patch.ClientID = &id
		merged.ClientID = id
	}
	if req.Date != nil {
		d, err := invoice.ParseDate(*req.Date)
		if err != nil {
			return patch, merged, err
		}
		patch.Date = &d
		merged.Date = d
	}
	if req.DueDate != nil {
		d, err := invoice.ParseDate(*req.DueDate)
		if err != nil {
			return patch, merged, err
		}
		patch.DueDate = &d
		merged.DueDate = d
	}
	if req.Status != nil {
		st := invoice.Status(*req.Status)
		patch.Status = &st
		merged.Status = st
	}
	if req.Items != nil {
		items := toLineItems(req.Items)
		patch.Items = &items
		merged.Items = items
	}
	return patch, merged, nil
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func writeNotFoundOr500(w http.ResponseWriter, message string, err error) {
	if invoice.IsNotFound(err) {
		writeError(w, http.StatusNotFound, message, nil)
		return
	}
	writeError(w, http.StatusInternalServerError, "Internal error", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
