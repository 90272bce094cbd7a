package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/mibprofile"
)

func (c *cli) listCommand() *cobra.Command {
	var count bool
	cmd := &cobra.Command{
		Use:   "list MIBS_DIR",
		Short: "List the module names generate would visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			names, err := mibprofile.ListModules(args[0],
				mibprofile.WithExtensions(c.cfg.Extensions...))
			if err != nil {
				return err
			}
			if count {
				_, _ = fmt.Fprintln(c.stdout, len(names))
				return nil
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(c.stdout, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&count, "count", false, "print only the module count")
	cmd.Flags().StringSlice("extensions", nil, "MIB source file extensions (default .my)")
	return cmd
}
