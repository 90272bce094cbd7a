package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/mibprofile"
)

func (c *cli) pathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the system MIB directories",
		Long: `Paths prints the MIB directories discovered from net-snmp and libsmi
configuration (snmp.conf, smi.conf, MIBDIRS, SMIPATH). They are searched for
module sources when --system-mibs is set.`,
		Args: cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			paths := mibprofile.SystemPaths(c.setupLogger())
			if len(paths) == 0 {
				_, _ = fmt.Fprintln(c.stderr, "no system MIB paths found")
				return
			}
			for _, p := range paths {
				_, _ = fmt.Fprintln(c.stdout, p)
			}
		},
	}
}
