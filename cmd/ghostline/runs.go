package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func runsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := newSession("runs")
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, s.close(context.Background())) }()

			backend, err := s.backend()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, backend.Close()) }()

			runs, err := backend.Runs(limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RECORDED\tMODE\tCOLLECTION\tTIME\tNODES\tLENGTH")
			for _, r := range runs {
				collection := r.CollectionName
				if collection == "" {
					collection = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.1fm\n",
					r.RecordedAt.Local().Format(time.DateTime), r.Mode, collection,
					r.Duration.Round(time.Millisecond), r.NodeCount, r.Length)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs, 0 for all")
	return cmd
}
