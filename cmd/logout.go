package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindupgrade/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the remembered login on this device",
	Long:  "Forget the remembered login on this device. Saved progress on the record service is kept.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := session.DefaultMarkerPath()
		if err != nil {
			return fmt.Errorf("resolve session marker: %w", err)
		}
		marker := session.NewFileMarker(path)
		email, err := marker.Load()
		if err != nil {
			return fmt.Errorf("read session marker: %w", err)
		}
		out := cmd.OutOrStdout()
		if email == "" {
			fmt.Fprintln(out, "Not logged in.")
			return nil
		}
		if err := marker.Clear(); err != nil {
			return fmt.Errorf("clear session marker: %w", err)
		}
		fmt.Fprintf(out, "Logged out %s.\n", email)
		return nil
	},
}
