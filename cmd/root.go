package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindupgrade/internal/client"
	"github.com/abhisek/mindupgrade/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mindupgrade",
	Short: "Daily brain training in your terminal",
	Long: "MindUpgrade: six short workouts a day for memory, focus, thinking, patience,\n" +
		"problem solving and writing. Finish all six for a perfect day and grow your streak.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides MINDUP_CONFIG env var)")
	rootCmd.PersistentFlags().String("api", "", "Record service URL (overrides MINDUP_API_URL env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and applies the persistent flags,
// which take the highest priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if api, _ := cmd.Flags().GetString("api"); api != "" {
		cfg.API.URL = api
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newClient returns a record service client for cfg.
func newClient(cfg config.Config) (*client.Client, error) {
	return client.New(cfg.API.URL, client.WithTimeout(cfg.API.Timeout))
}
