// Package record provides record persistence interfaces
package record

import "context"

// Store persists execution records (DIP - Dependency Inversion).
// PRINCIPLES:
// - ISP: Interface segregation with <=3 methods
// - SRP: Single responsibility - record persistence
//
// Implementations must serialize concurrent writers themselves: multiple
// runs may record simultaneously. Save is append-only; a saved record is
// never mutated.
type Store interface {
	// Save persists a record.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records matching the filter, most recent first.
	List(ctx context.Context, filter Filter) ([]*Record, error)
}

// Filter narrows List results.
type Filter struct {
	// GraphName restricts results to one graph when non-empty.
	GraphName string
	// Limit caps the number of results; <=0 means no cap.
	Limit int
}
