// Package storage defines the persistence contract for the journal entry
// collection. The core reads the full ordered collection at session start and
// writes the full updated collection back after every insert or enrichment
// commit (whole-collection replace semantics, not incremental patch).
package storage

import (
	"context"

	"github.com/scrypster/inkwell/pkg/types"
)

// EntryStore persists the journal entry collection as a single ordered list,
// most recent entry first.
type EntryStore interface {
	// LoadAll returns the full entry collection in stored order.
	// An empty journal yields an empty slice, not an error.
	LoadAll(ctx context.Context) ([]types.Entry, error)

	// ReplaceAll atomically replaces the stored collection with entries,
	// preserving their order.
	ReplaceAll(ctx context.Context, entries []types.Entry) error

	// Close releases any resources held by the store.
	Close() error
}
