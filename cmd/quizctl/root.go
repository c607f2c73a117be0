package main

import (
	"os"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quizctl",
		Short:         "Generate multiple-choice quizzes from documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("config", "", "Path to a YAML config file (environment variables still apply)")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newMCPCmd())
	return root
}

// loadConfig reads the config named by --config. Logs go to stderr, stdout
// carries the quiz or the MCP protocol.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger_i.InitWithWriter(os.Stderr, cfg.Log.Prod, cfg.Log.Level)
	return cfg, nil
}
