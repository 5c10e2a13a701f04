package stategraph

import (
	"context"
	"log/slog"

	"github.com/stategraph/stategraph/internal/adapters/repository/memory"
	"github.com/stategraph/stategraph/internal/app/dto"
	"github.com/stategraph/stategraph/internal/app/services"
	"github.com/stategraph/stategraph/internal/app/usecases"
	"github.com/stategraph/stategraph/internal/core/graph"
	"github.com/stategraph/stategraph/internal/core/record"
	"github.com/stategraph/stategraph/internal/core/state"
)

// Re-export core builder types for convenience.
type (
	Graph         = graph.Graph
	Node          = graph.Node
	NodeFunc      = graph.NodeFunc
	BaseNode      = graph.BaseNode
	NodeType      = graph.NodeType
	Command       = graph.Command
	Resolver      = graph.Resolver
	StreamChunk   = graph.StreamChunk
	StreamingNode = graph.StreamingNode
	Values        = state.Values
	Reducer       = state.Reducer
	Reducers      = state.Reducers
	Event         = dto.Event
	EventType     = dto.EventType
	Observer      = usecases.Observer
	ObserverFunc  = usecases.ObserverFunc
	Runner        = usecases.Runner
	Option        = usecases.Option
	Record        = record.Record
)

// End is the terminal routing sentinel.
const End = graph.End

// New creates an empty graph builder.
func New(name string) *Graph { return graph.New(name) }

// Patch builds a command that updates state and follows the graph's edges.
func Patch(update Values) Command { return graph.Patch(update) }

// Goto builds a command that updates state and redirects to target.
func Goto(target string, update Values) Command { return graph.Goto(target, update) }

// Compile validates the graph and returns its immutable runner.
func Compile(g *Graph, opts ...Option) (*Runner, error) {
	return usecases.NewRunner(g, opts...)
}

// Runner options, re-exported.
var (
	WithMaxIterations = usecases.WithMaxIterations
	WithStreamBuffer  = usecases.WithStreamBuffer
	WithReducers      = usecases.WithReducers
	WithObserver      = usecases.WithObserver
	WithRecorder      = usecases.WithRecorder
	WithLogger        = usecases.WithLogger
)

// Reducers, re-exported.
var (
	Overwrite = state.Overwrite
	Append    = state.Append
	MergeMaps = state.MergeMaps
)

// Runtime is a façade bundling a record store and recorder so callers can
// compile and run graphs with a persisted audit trail without importing
// internal packages. The default runtime records to memory and is suitable
// for local usage and tests.
type Runtime struct {
	recorder *services.RecorderService
	logger   *slog.Logger
}

// NewRuntime constructs a runtime recording to an in-memory store.
func NewRuntime() *Runtime {
	return NewRuntimeWithStore(memory.NewRecordStore(), slog.Default())
}

// NewRuntimeWithStore constructs a runtime recording to the given store.
func NewRuntimeWithStore(store record.Store, logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runtime{
		recorder: services.NewRecorderService(store, logger),
		logger:   logger,
	}
}

// Compile validates the graph and returns a runner wired to the runtime's
// recorder and logger. Extra options are applied after the runtime's own.
func (rt *Runtime) Compile(g *Graph, opts ...Option) (*Runner, error) {
	all := append([]Option{
		WithRecorder(rt.recorder),
		WithLogger(rt.logger),
	}, opts...)
	return usecases.NewRunner(g, all...)
}

// Run compiles and invokes the graph in one call.
func (rt *Runtime) Run(ctx context.Context, g *Graph, initial Values, opts ...Option) (Values, error) {
	runner, err := rt.Compile(g, opts...)
	if err != nil {
		return nil, err
	}
	return runner.Invoke(ctx, initial)
}

// RecentRecords returns the most recent execution records, newest first,
// optionally filtered by graph name.
func (rt *Runtime) RecentRecords(ctx context.Context, graphName string, limit int) ([]*Record, error) {
	return rt.recorder.GetRecent(ctx, graphName, limit)
}

// RecordByID retrieves one execution record.
func (rt *Runtime) RecordByID(ctx context.Context, id string) (*Record, error) {
	return rt.recorder.Get(ctx, id)
}
