package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stategraph/stategraph/internal/core/record"
)

func newRecordsCmd() *cobra.Command {
	var (
		graphName string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List recent execution records",
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

			records, err := store.List(ctx, record.Filter{GraphName: graphName, Limit: limit})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tGRAPH\tSUCCESS\tDURATION\tNODES\tERROR")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%t\t%.3fs\t%d\t%s\n",
					rec.ID, rec.GraphName, rec.Success, rec.DurationSeconds,
					len(rec.NodeResults), rec.ErrorMessage)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&graphName, "graph", "", "filter by graph name")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum records to list")
	return cmd
}
