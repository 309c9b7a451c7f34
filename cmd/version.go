package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "mindupgrade", version)

		if check, _ := cmd.Flags().GetBool("server"); !check {
			return nil
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		api, err := newClient(cfg)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
		defer cancel()
		v, err := api.Ping(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "record service %s at %s\n", v, api.BaseURL())
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("server", false, "Also report the record service version")
}
