// Package sqlite provides a SQLite-backed record store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/stategraph/stategraph/internal/core/record"
	"github.com/stategraph/stategraph/internal/core/state"
	"github.com/stategraph/stategraph/pkg/serialization"
)

// RecordStore implements record.Store on SQLite. State snapshots and node
// results are stored as serialized blobs; scalar fields stay queryable
// columns. SQLite serializes concurrent writers itself, which satisfies the
// store's concurrency contract.
type RecordStore struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// Open opens (creating if needed) a record store at the given database path.
func Open(path string) (*RecordStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	s := NewRecordStore(db, serialization.Default())
	if err := s.CreateTables(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewRecordStore creates a store over an existing database handle.
func NewRecordStore(db *sql.DB, serializer *serialization.Serializer) *RecordStore {
	return &RecordStore{
		db:         db,
		serializer: serializer,
		tableName:  "execution_records",
	}
}

// WithTableName overrides the default table name. Only alphanumeric and
// underscore are permitted to keep identifiers out of injection reach.
func (s *RecordStore) WithTableName(name string) *RecordStore {
	if isSafeIdent(name) {
		s.tableName = name
	}
	return s
}

func isSafeIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

// Close closes the underlying database handle.
func (s *RecordStore) Close() error { return s.db.Close() }

// CreateTables creates the record table and its indexes.
func (s *RecordStore) CreateTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			graph_name TEXT NOT NULL,
			input_data BLOB,
			output_result BLOB,
			node_results BLOB,
			start_time INTEGER NOT NULL,
			end_time INTEGER NOT NULL,
			duration_seconds REAL NOT NULL,
			success INTEGER NOT NULL,
			error_message TEXT,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_%s_graph_name ON %s (graph_name);
		CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at);
	`, s.tableName, s.tableName, s.tableName, s.tableName, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Save stores a record. The log is append-only: inserting an existing ID
// fails rather than overwriting.
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		rec.ID, rec.GraphName, input, output, nodeResults,
		rec.StartTime.UnixNano(), rec.EndTime.UnixNano(), rec.DurationSeconds,
		boolToInt(rec.Success), rec.ErrorMessage, rec.CreatedAt.UnixNano())
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
		WHERE id = ?
	`, s.tableName)

	rec, err := s.scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
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
		query += " WHERE graph_name = ?"
		args = append(args, filter.GraphName)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *RecordStore) scanRecord(row scanner) (*record.Record, error) {
	var rec record.Record
	var input, output, nodeResults []byte
	var startNS, endNS, createdNS int64
	var success int

	err := row.Scan(&rec.ID, &rec.GraphName, &input, &output, &nodeResults,
		&startNS, &endNS, &rec.DurationSeconds, &success, &rec.ErrorMessage, &createdNS)
	if err != nil {
		return nil, err
	}

	rec.StartTime = time.Unix(0, startNS)
	rec.EndTime = time.Unix(0, endNS)
	rec.CreatedAt = time.Unix(0, createdNS)
	rec.Success = success != 0

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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
