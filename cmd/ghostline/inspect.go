package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghostline/recorder/internal/compfile"
	"github.com/ghostline/recorder/internal/geo"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the triggers and collections of a comparison file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := compfile.Load(args[0])
			if err != nil {
				return err
			}
			return writeInspect(cmd.OutOrStdout(), f)
		},
	}
}

func writeInspect(out io.Writer, f *compfile.File) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "version\t%s\n", f.Version)
	for i, t := range f.Triggers {
		name := "start"
		if i == 1 {
			name = "end"
		}
		fmt.Fprintf(w, "%s trigger\tpos %v\trot %v\tsize %v\n", name, t.Position, t.Rotation, t.Size)
	}
	for _, c := range f.Collections {
		fmt.Fprintf(w, "\ncollection %q\t%s\t%d paths\n", c.Name, c.ID, c.Len())
		for i, p := range c.Paths {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%d segments\t%d nodes\t%.1fm\n",
				i+1, p.ID, p.Time().Round(time.Millisecond), len(p.Segments), p.NodeCount(), geo.Length(p))
		}
	}
	return w.Flush()
}
