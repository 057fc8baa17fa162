package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghostline/recorder/internal/compfile"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate IN OUT",
		Short: "Rewrite a comparison file of any supported version in the current schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := compfile.Load(args[0])
			if err != nil {
				return err
			}
			from := f.Version
			out := compfile.WithExtension(args[1])
			if err := compfile.Save(out, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s (version %s) to %s (version %s)\n",
				args[0], from, out, compfile.CurrentVersion)
			return nil
		},
	}
}
