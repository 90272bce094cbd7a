package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) compileCommand() *cobra.Command {
	var destDir string
	cmd := &cobra.Command{
		Use:   "compile MIB...",
		Short: "Compile MIB modules to the JSON cache",
		Long: `Compile resolves each named module, fetching it and its imports from the
local MIB sources or the remote repository, and writes <MIB>.json to the
destination directory. The destination is also searched for sources.`,
		Example: `  mibprofile compile IF-MIB SNMPv2-MIB -d ./mibs`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp := c.newCompiler(c.setupLogger(), destDir)

			var errs []error
			for _, module := range args {
				if err := comp.Compile(cmd.Context(), module, destDir); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", module, err))
					continue
				}
				_, _ = fmt.Fprintf(c.stdout, "compiled %s\n", module)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVarP(&destDir, "dest", "d", ".", "directory the JSON documents are written to")
	return cmd
}
