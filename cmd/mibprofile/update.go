package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golangsnmp/mibprofile"
)

func (c *cli) updateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update PROFILE_OLD PROFILE_NEW",
		Short: "List the metrics a new profile adds to a published one",
		Long: `Update expands PROFILE_OLD through its extends chain and outputs the
metrics of PROFILE_NEW whose OIDs it does not cover. Relative profile names
resolve against --profiles-root.`,
		Example: `  mibprofile update _base.yaml generated.yaml --profiles-root ./profiles`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := mibprofile.Update(cmd.Context(), args[0], args[1],
				mibprofile.WithLogger(c.setupLogger()),
				mibprofile.WithProfilesRoot(c.cfg.ProfilesRoot),
			)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(c.stdout, "Additional oid metrics: %d\n", len(metrics))
			return c.publishMetrics(metrics)
		},
	}
	cmd.Flags().String("profiles-root", "", "directory relative profile names resolve against")
	return cmd
}
