/*
snapshot.go - Serialized state envelope and schema migration

PERSISTED LAYOUT:
  {
    "state": {
      "invoices": [...],
      "clients":  [...],
      "settings": {...}
    },
    "version": 2
  }

MIGRATION STATE MACHINE:
  States are version integers. 1 -> 2 sets settings.lastInvoiceNumber to
  null, leaving all other data untouched (the field did not exist before
  version 2). Any version not explicitly handled passes through
  unchanged. There is no downgrade path.
*/
package store

import (
	"encoding/json"

	"github.com/felixlvh/invoice/invoice"
)

// SchemaVersion is the current version written with every snapshot.
const SchemaVersion = 2

// StorageKey is the fixed namespace the blob lives under in backends
// that address by key.
const StorageKey = "invoice-storage"

type envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

func defaultState() State {
	return State{
		Invoices: []invoice.Invoice{},
		Clients:  []invoice.Client{},
		Settings: invoice.DefaultSettings(),
	}
}

func encodeSnapshot(state State) ([]byte, error) {
	return json.Marshal(envelope{State: state, Version: SchemaVersion})
}

// decodeSnapshot parses a persisted blob and runs any pending migration.
// The second return reports whether a migration was applied.
func decodeSnapshot(blob []byte) (State, bool, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return State{}, false, err
	}
	migrated := migrate(&env)
	normalize(&env.State)
	return env.State, migrated, nil
}

// migrate advances env to the current schema version.
func migrate(env *envelope) bool {
	if env.Version == 1 {
		// Version 1 predates last-number tracking.
		env.State.Settings.LastInvoiceNumber = nil
		env.Version = 2
		return true
	}
	return false
}

// normalize replaces nil sequences with empty ones so the serialized
// form always carries arrays, never null.
func normalize(state *State) {
	if state.Invoices == nil {
		state.Invoices = []invoice.Invoice{}
	}
	if state.Clients == nil {
		state.Clients = []invoice.Client{}
	}
	for i := range state.Invoices {
		if state.Invoices[i].Items == nil {
			state.Invoices[i].Items = []invoice.LineItem{}
		}
	}
}
