// Package postgres provides a PostgreSQL-backed record store.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stategraph/stategraph/internal/core/record"
	"github.com/stategraph/stategraph/internal/core/state"
	"github.com/stategraph/stategraph/pkg/serialization"
)

// RecordStore implements record.Store on PostgreSQL via a pgx pool. The
// pool serializes writers at the database, satisfying the store's
// concurrency contract for simultaneous runs.
type RecordStore struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// NewRecordStore creates a store over an existing connection pool.
func NewRecordStore(pool *pgxpool.Pool, serializer *serialization.Serializer) *RecordStore {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &RecordStore{
		pool:       pool,
		serializer: serializer,
		tableName:  "execution_records",
	}
}

// CreateTables creates the record table and its indexes.
func (s *RecordStore) CreateTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			graph_name TEXT NOT NULL,
			input_data BYTEA,
			output_result BYTEA,
			node_results BYTEA,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			duration_seconds DOUBLE PRECISION NOT NULL,
			success BOOLEAN NOT NULL,
			error_message TEXT,
			created_at TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_%s_graph_name ON %s (graph_name);
		CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at);
	`, s.tableName, s.tableName, s.tableName, s.tableName, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Save stores a record; the log is append-only.
func (s *RecordStore) Save(ctx context.Context, rec *record.Record) error {
	if rec == nil {
		return record.ErrNilRecord
	}
	if rec.ID == "" {
		return record.ErrInvalidRecordID
	}

	input, err := s.serializer.Serialize(rec.InputData)
	if err != nil {
		return fmt.Errorf("failed to serialize input data: %w", err)
	}
	output, err := s.serializer.Serialize(rec.OutputResult)
	if err != nil {
		return fmt.Errorf("failed to serialize output result: %w", err)
	}
	nodeResults, err := s.serializer.Serialize(rec.NodeResults)
	if err != nil {
		return fmt.Errorf("failed to serialize node results: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, graph_name, input_data, output_result, node_results,
			start_time, end_time, duration_seconds, success, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		rec.ID, rec.GraphName, input, output, nodeResults,
		rec.StartTime, rec.EndTime, rec.DurationSeconds,
		rec.Success, rec.ErrorMessage, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *RecordStore) Get(ctx context.Context, id string) (*record.Record, error) {
	if id == "" {
		return nil, record.ErrInvalidRecordID
	}

	query := fmt.Sprintf(`
		SELECT id, graph_name, input_data, output_result, node_results,
			start_time, end_time, duration_seconds, success, error_message, created_at
		FROM %s
		WHERE id = $1
	`, s.tableName)

	rec, err := s.scanRecord(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", record.ErrRecordNotFound, id)
	}
	return rec, err
}

// List returns matching records, most recent first.
func (s *RecordStore) List(ctx context.Context, filter record.Filter) ([]*record.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, graph_name, input_data, output_result, node_results,
			start_time, end_time, duration_seconds, success, error_message, created_at
		FROM %s
	`, s.tableName)

	var args []any
	if filter.GraphName != "" {
		query += " WHERE graph_name = $1"
		args = append(args, filter.GraphName)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*record.Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *RecordStore) scanRecord(row pgx.Row) (*record.Record, error) {
	var rec record.Record
	var input, output, nodeResults []byte

	err := row.Scan(&rec.ID, &rec.GraphName, &input, &output, &nodeResults,
		&rec.StartTime, &rec.EndTime, &rec.DurationSeconds, &rec.Success,
		&rec.ErrorMessage, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	rec.InputData = make(state.Values)
	if err := s.serializer.Deserialize(input, &rec.InputData); err != nil {
		return nil, fmt.Errorf("failed to deserialize input data: %w", err)
	}
	rec.OutputResult = make(state.Values)
	if err := s.serializer.Deserialize(output, &rec.OutputResult); err != nil {
		return nil, fmt.Errorf("failed to deserialize output result: %w", err)
	}
	if err := s.serializer.Deserialize(nodeResults, &rec.NodeResults); err != nil {
		return nil, fmt.Errorf("failed to deserialize node results: %w", err)
	}
	return &rec, nil
}
