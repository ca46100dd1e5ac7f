/*
Package store is the sole authority over committed application state.

PURPOSE:
  Holds the aggregate root {clients, invoices, settings} in memory,
  exposes mutation operations, and writes the entire state back to a
  pluggable backend after every successful mutation. The view layer
  never holds authoritative copies, only transient edit buffers.

LIFECYCLE:
  1. Open(): hydrate once from the backend (or default if absent/corrupt)
  2. Mutate only through the declared operations
  3. Every mutation flushes the full serialized snapshot
  4. Close(): final flush, then close the backend

ATOMICITY:
  Every operation runs to completion under the write lock before the
  next caller-visible state is observable. AddInvoice computes the next
  invoice number from the pre-mutation state inside that same critical
  section, so two back-to-back creations can never share a number,
  even with concurrent callers.

OWNERSHIP:
  The Store is an explicit, injectable container - construct one per
  process (or per test) and pass it where needed. There is no package
  global.

INVARIANTS ENFORCED HERE:
  - Invoice.Total == sum(item.Quantity * item.Price) after every commit;
    callers cannot supply a total, it is recomputed from the final item
    list on both create and update
  - Settings.LastInvoiceNumber always names the most recently assigned
    number
  - Mutations targeting a missing identifier return a not-found error
    and leave state untouched

NOT ENFORCED (per the domain contract):
  - Field validation: the store accepts any record shape; validation is
    a view-layer responsibility
  - Referential integrity: deleting a client does not cascade to
    invoices referencing it

SEE ALSO:
  - snapshot.go: Serialized envelope, schema version, migration
  - memory.go: In-memory backend for tests
  - file/file.go, sqlite/sqlite.go: Durable backends
*/
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/felixlvh/invoice/invoice"
)

// Backend persists the serialized snapshot blob under a fixed namespace.
// Load returns (nil, nil) when no snapshot has ever been saved.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	Close() error
}

// State is the aggregate root: everything the application knows.
type State struct {
	Invoices []invoice.Invoice `json:"invoices"`
	Clients  []invoice.Client  `json:"clients"`
	Settings invoice.Settings  `json:"settings"`
}

// Store guards State and flushes it to the backend after every mutation.
type Store struct {
	mu      sync.RWMutex
	state   State
	backend Backend
	log     *logrus.Logger

	now   func() time.Time
	newID func() string
}

// Open hydrates a store from the backend. A missing snapshot starts the
// store from defaults (empty sequences, prefix "INV-"); a corrupt one is
// logged and replaced by defaults.
func Open(ctx context.Context, backend Backend, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{
		backend: backend,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}

	blob, err := backend.Load(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case len(blob) == 0:
		s.state = defaultState()
		log.Info("no persisted state, starting from defaults")
	default:
		state, migrated, err := decodeSnapshot(blob)
		if err != nil {
			log.WithError(err).Warn("persisted state unreadable, starting from defaults")
			s.state = defaultState()
		} else {
			s.state = state
			if migrated {
				log.WithField("version", SchemaVersion).Info("migrated persisted state")
			}
		}
	}

	// Write the hydrated (possibly migrated or defaulted) state back so
	// the blob on disk always carries the current schema version.
	s.flushLocked(ctx)
	return s, nil
}

// Close flushes once more and closes the backend.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveLocked(context.Background()); err != nil {
		s.backend.Close()
		return err
	}
	return s.backend.Close()
}

// flushLocked serializes the whole state to the backend. Persistence is
// fire-and-forget from the caller's point of view: a failed write is
// logged, never surfaced, and the in-memory state stays committed.
func (s *Store) flushLocked(ctx context.Context) {
	if err := s.saveLocked(ctx); err != nil {
		s.log.WithError(err).Error("failed to persist state")
	}
}

func (s *Store) saveLocked(ctx context.Context) error {
	blob, err := encodeSnapshot(s.state)
	if err != nil {
		return err
	}
	return s.backend.Save(ctx, blob)
}

// =============================================================================
// CLIENT MUTATIONS
// =============================================================================

// ClientData is the caller-supplied portion of a new client.
type ClientData struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Company string
}

// ClientPatch is a shallow merge: nil fields are left unchanged.
type ClientPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Company *string
}

// AddClient assigns a fresh identifier and appends the client.
// The store performs no validation.
func (s *Store) AddClient(ctx context.Context, data ClientData) (invoice.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := invoice.Client{
		ID:      invoice.ClientID(s.newID()),
		Name:    data.Name,
		Email:   data.Email,
		Phone:   data.Phone,
		Address: data.Address,
		Company: data.Company,
	}
	s.state.Clients = append(s.state.Clients, c)
	s.flushLocked(ctx)
	return c, nil
}

// UpdateClient merges patch onto the client matching id.
func (s *Store) UpdateClient(ctx context.Context, id invoice.ClientID, patch ClientPatch) (invoice.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Clients {
		if s.state.Clients[i].ID != id {
			continue
		}
		c := &s.state.Clients[i]
		applyString(&c.Name, patch.Name)
		applyString(&c.Email, patch.Email)
		applyString(&c.Phone, patch.Phone)
		applyString(&c.Address, patch.Address)
		applyString(&c.Company, patch.Company)
		s.flushLocked(ctx)
		return *c, nil
	}
	return invoice.Client{}, invoice.ErrClientNotFound
}

// DeleteClient removes the client matching id. It does not touch
// invoices referencing the client.
func (s *Store) DeleteClient(ctx context.Context, id invoice.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Clients {
		if s.state.Clients[i].ID == id {
			s.state.Clients = append(s.state.Clients[:i], s.state.Clients[i+1:]...)
			s.flushLocked(ctx)
			return nil
		}
	}
	return invoice.ErrClientNotFound
}

// =============================================================================
// INVOICE MUTATIONS
// =============================================================================

// InvoiceData is the caller-supplied portion of a new invoice. ID,
// Number, Total and CreatedAt are assigned by the store.
type InvoiceData struct {
	ClientID invoice.ClientID
	Date     invoice.Date
	DueDate  invoice.Date
	Status   invoice.Status
	Items    []invoice.LineItem
}

// InvoicePatch is a shallow merge: nil fields are left unchanged.
// There is deliberately no Total field; the total is recomputed from
// the final item list on every commit.
type InvoicePatch struct {
	ClientID *invoice.ClientID
	Date     *invoice.Date
	DueDate  *invoice.Date
	Status   *invoice.Status
	Items    *[]invoice.LineItem
}

// AddInvoice assigns identity, number, total and creation timestamp,
// appends the invoice, and records the number as the last assigned - all
// as one atomic step. The number is computed from the pre-mutation state
// under the write lock, which is what the no-collision guarantee rests on.
func (s *Store) AddInvoice(ctx context.Context, data InvoiceData) (invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := invoice.NextNumber(s.state.Invoices, s.state.Settings)
	status := data.Status
	if status == "" {
		status = invoice.StatusDraft
	}

	inv := invoice.Invoice{
		ID:        invoice.InvoiceID(s.newID()),
		Number:    number,
		ClientID:  data.ClientID,
		Date:      data.Date,
		DueDate:   data.DueDate,
		Status:    status,
		Items:     cloneItems(data.Items),
		Total:     invoice.Total(data.Items),
		CreatedAt: s.now().UTC(),
	}

	s.state.Invoices = append(s.state.Invoices, inv)
	s.state.Settings.LastInvoiceNumber = &number
	s.flushLocked(ctx)
	return inv, nil
}

// UpdateInvoice merges patch onto the invoice matching id, recomputes
// the total from the resulting item list, and stamps UpdatedAt. The
// identifier and number are immutable after creation.
func (s *Store) UpdateInvoice(ctx context.Context, id invoice.InvoiceID, patch InvoicePatch) (invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Invoices {
		if s.state.Invoices[i].ID != id {
			continue
		}
		inv := &s.state.Invoices[i]
		if patch.ClientID != nil {
			inv.ClientID = *patch.ClientID
		}
		if patch.Date != nil {
			inv.Date = *patch.Date
		}
		if patch.DueDate != nil {
			inv.DueDate = *patch.DueDate
		}
		if patch.Status != nil {
			inv.Status = *patch.Status
		}
		if patch.Items != nil {
			inv.Items = cloneItems(*patch.Items)
		}
		inv.Total = invoice.Total(inv.Items)
		now := s.now().UTC()
		inv.UpdatedAt = &now
		s.flushLocked(ctx)
		return *inv, nil
	}
	return invoice.Invoice{}, invoice.ErrInvoiceNotFound
}

// DeleteInvoice removes the invoice matching id.
func (s *Store) DeleteInvoice(ctx context.Context, id invoice.InvoiceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Invoices {
		if s.state.Invoices[i].ID == id {
			s.state.Invoices = append(s.state.Invoices[:i], s.state.Invoices[i+1:]...)
			s.flushLocked(ctx)
			return nil
		}
	}
	return invoice.ErrInvoiceNotFound
}

// =============================================================================
// SETTINGS
// =============================================================================

// SettingsPatch is a shallow merge onto the singleton settings record.
// LastInvoiceNumber is store-managed and cannot be patched.
type SettingsPatch struct {
	CompanyName   *string
	Logo          *string
	Address       *string
	InvoicePrefix *string
}

func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) (invoice.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applyString(&s.state.Settings.CompanyName, patch.CompanyName)
	applyString(&s.state.Settings.Logo, patch.Logo)
	applyString(&s.state.Settings.Address, patch.Address)
	applyString(&s.state.Settings.InvoicePrefix, patch.InvoicePrefix)
	s.flushLocked(ctx)
	return s.state.Settings, nil
}

// =============================================================================
// READS - All return copies; the store keeps the only authoritative state
// =============================================================================

func (s *Store) Clients() []invoice.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]invoice.Client, len(s.state.Clients))
	copy(out, s.state.Clients)
	return out
}

func (s *Store) Client(id invoice.ClientID) (invoice.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.state.Clients {
		if c.ID == id {
			return c, nil
		}
	}
	return invoice.Client{}, invoice.ErrClientNotFound
}

func (s *Store) Invoices() []invoice.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]invoice.Invoice, len(s.state.Invoices))
	for i, inv := range s.state.Invoices {
		inv.Items = cloneItems(inv.Items)
		out[i] = inv
	}
	return out
}

func (s *Store) Invoice(id invoice.InvoiceID) (invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.state.Invoices {
		if inv.ID == id {
			inv.Items = cloneItems(inv.Items)
			return inv, nil
		}
	}
	return invoice.Invoice{}, invoice.ErrInvoiceNotFound
}

func (s *Store) Settings() invoice.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

// =============================================================================
// SUMMARY - Dashboard aggregates
// =============================================================================

// Summary is the dashboard view of the invoice set: total invoiced
// amount across all statuses plus per-status counts.
type Summary struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Draft       int             `json:"draft"`
	Pending     int             `json:"pending"` // status "sent"
	Overdue     int             `json:"overdue"`
	Paid        int             `json:"paid"`
	Invoices    int             `json:"invoices"`
	Clients     int             `json:"clients"`
}

func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{
		TotalAmount: decimal.Zero,
		Invoices:    len(s.state.Invoices),
		Clients:     len(s.state.Clients),
	}
	for _, inv := range s.state.Invoices {
		sum.TotalAmount = sum.TotalAmount.Add(inv.Total)
		switch inv.Status {
		case invoice.StatusDraft:
			sum.Draft++
		case invoice.StatusSent:
			sum.Pending++
		case invoice.StatusOverdue:
			sum.Overdue++
		case invoice.StatusPaid:
			sum.Paid++
		}
	}
	return sum
}

// =============================================================================
// HELPERS
// =============================================================================

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func cloneItems(items []invoice.LineItem) []invoice.LineItem {
	out := make([]invoice.LineItem, len(items))
	copy(out, items)
	return out
}
