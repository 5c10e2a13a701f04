// Package memory provides a thread-safe in-memory record store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/stategraph/stategraph/internal/core/record"
)

// RecordStore implements record.Store with in-memory storage, suitable for
// tests and short-lived processes.
// PRINCIPLES:
// - KISS: A slice in insertion order plus an ID index, behind one mutex
// - DIP: Implements the record.Store interface
type RecordStore struct {
	mu      sync.RWMutex
	records []*record.Record
	byID    map[string]*record.Record
}

// NewRecordStore creates an empty in-memory store.
func NewRecordStore() *RecordStore {
	return &RecordStore{byID: make(map[string]*record.Record)}
}

// Save appends a record. Saved records are never mutated; re-using an ID is
// rejected to keep the log append-only.
func (s *RecordStore) Save(_ context.Context, rec *record.Record) error {
	if rec == nil {
		return record.ErrNilRecord
	}
	if rec.ID == "" {
		return record.ErrInvalidRecordID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[rec.ID]; exists {
		return fmt.Errorf("%w: %s", record.ErrDuplicateRecord, rec.ID)
	}
	s.records = append(s.records, rec)
	s.byID[rec.ID] = rec
	return nil
}

// Get retrieves a record by ID.
func (s *RecordStore) Get(_ context.Context, id string) (*record.Record, error) {
	if id == "" {
		return nil, record.ErrInvalidRecordID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", record.ErrRecordNotFound, id)
	}
	return rec, nil
}

// List returns matching records, most recent first.
func (s *RecordStore) List(_ context.Context, filter record.Filter) ([]*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*record.Record
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if filter.GraphName != "" && rec.GraphName != filter.GraphName {
			continue
		}
		out = append(out, rec)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}
