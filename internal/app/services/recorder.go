// Package services wires core entities to their persistence abstractions.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/stategraph/stategraph/internal/core/record"
)

// RecorderService implements the execution recorder on top of a
// record.Store.
// PRINCIPLES:
// - SRP: Validates and persists run records, nothing else
// - DIP: Depends on the record.Store abstraction
//
// Record is append-only: past records are never mutated. Store failures are
// logged and reported to the caller, who is expected to swallow them -
// observability never perturbs control flow.
type RecorderService struct {
	store    record.Store
	validate *validator.Validate
	logger   *slog.Logger
}

// NewRecorderService creates a recorder backed by the given store.
func NewRecorderService(store record.Store, logger *slog.Logger) *RecorderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecorderService{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// Record persists one run record and returns its ID. A missing ID is filled
// in; CreatedAt defaults to now.
func (s *RecorderService) Record(ctx context.Context, rec *record.Record) (string, error) {
	if rec == nil {
		return "", record.ErrNilRecord
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if err := s.validate.Struct(rec); err != nil {
		return "", fmt.Errorf("invalid execution record: %w", err)
	}
	if err := s.store.Save(ctx, rec); err != nil {
		s.logger.Warn("failed to save execution record",
			"record_id", rec.ID, "graph", rec.GraphName, "error", err)
		return "", fmt.Errorf("failed to save execution record: %w", err)
	}
	return rec.ID, nil
}

// GetRecent returns the most recent records, newest first, optionally
// filtered by graph name.
func (s *RecorderService) GetRecent(ctx context.Context, graphName string, limit int) ([]*record.Record, error) {
	return s.store.List(ctx, record.Filter{GraphName: graphName, Limit: limit})
}

// Get retrieves one record by ID.
func (s *RecorderService) Get(ctx context.Context, id string) (*record.Record, error) {
	if id == "" {
		return nil, record.ErrInvalidRecordID
	}
	return s.store.Get(ctx, id)
}
