package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stategraph/stategraph/internal/app/services"
	"github.com/stategraph/stategraph/pkg/stategraph"
)

// newRunCmd streams a built-in demo graph: a counter incremented in a loop
// with conditional routing back to the start, plus a streaming summary node.
// Each event is printed as one JSON line; the run is persisted to the
// configured record store.
func newRunCmd() *cobra.Command {
	var loops int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo graph and stream its events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, closer, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			g, err := demoGraph(loops)
			if err != nil {
				return err
			}
			runner, err := stategraph.Compile(g,
				stategraph.WithMaxIterations(cfg.Execution.MaxIterations),
				stategraph.WithStreamBuffer(cfg.Execution.StreamBuffer),
				stategraph.WithRecorder(services.NewRecorderService(store, slog.Default())),
			)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			for ev := range runner.Stream(ctx, stategraph.Values{"count": 0}) {
				if err := enc.Encode(ev); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&loops, "loops", 3, "times the counter node loops before finishing")
	return cmd
}

func demoGraph(loops int) (*stategraph.Graph, error) {
	g := stategraph.New("demo")

	increment := stategraph.NodeFunc(func(_ context.Context, st stategraph.Values) (stategraph.Command, error) {
		return stategraph.Patch(stategraph.Values{"count": st.GetInt("count", 0) + 1}), nil
	})
	summarize := stategraph.NodeFunc(func(_ context.Context, st stategraph.Values) (stategraph.Command, error) {
		return stategraph.Patch(stategraph.Values{
			"summary": fmt.Sprintf("counted to %d", st.GetInt("count", 0)),
		}), nil
	})

	if err := g.AddNode("increment", increment); err != nil {
		return nil, err
	}
	if err := g.AddNode("summarize", summarize); err != nil {
		return nil, err
	}
	if err := g.AddConditionalEdges("increment", func(st stategraph.Values) string {
		if st.GetInt("count", 0) < loops {
			return "increment"
		}
		return "summarize"
	}); err != nil {
		return nil, err
	}
	if err := g.AddEdge("summarize", stategraph.End); err != nil {
		return nil, err
	}
	if err := g.SetEntryPoint("increment"); err != nil {
		return nil, err
	}
	return g, nil
}
