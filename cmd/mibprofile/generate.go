package main

import (
	"github.com/spf13/cobra"

	"github.com/golangsnmp/mibprofile"
)

func (c *cli) generateCommand() *cobra.Command {
	var (
		filterPath string
		segment    bool
		noCompile  bool
	)
	cmd := &cobra.Command{
		Use:   "generate MIBS_DIR",
		Short: "Generate a profile from the MIB modules in a directory",
		Long: `Generate lists the MIB source files in MIBS_DIR, loads the compiled JSON
form of each module (compiling it when missing) and writes a profile holding
one metric per scalar and per table.

The output is copied to the clipboard unless --output or --no-clipboard is
given.`,
		Example: `  mibprofile generate ./mibs
  mibprofile generate ./mibs --oid-filter filter.yaml --segment-filter
  mibprofile generate ./mibs --no-compile -o profile.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := c.loadFilter(filterPath)
			if err != nil {
				return err
			}

			logger := c.setupLogger()
			opts := []mibprofile.Option{
				mibprofile.WithLogger(logger),
				mibprofile.WithExtensions(c.cfg.Extensions...),
				mibprofile.WithSegmentFilter(segment),
			}
			if filter != nil {
				opts = append(opts, mibprofile.WithFilter(filter))
			}
			if !noCompile {
				opts = append(opts, mibprofile.WithCompiler(c.newCompiler(logger, args[0])))
			}

			metrics, err := mibprofile.Generate(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			return c.publishMetrics(metrics)
		},
	}

	f := cmd.Flags()
	f.StringVar(&filterPath, "oid-filter", "", "YAML file mapping module names to OID roots")
	f.BoolVar(&segment, "segment-filter", false, "match filter roots on whole OID arcs")
	f.BoolVar(&noCompile, "no-compile", false, "only use modules already compiled to JSON")
	f.StringSlice("extensions", nil, "MIB source file extensions (default .my)")
	return cmd
}
