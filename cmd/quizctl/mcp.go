package main

import (
	"github.com/akolanti/quizcrafter/internal/bootstrap"
	"github.com/akolanti/quizcrafter/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generate_quiz tool over MCP on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			quiz, err := bootstrap.NewQuizService(ctx, cfg)
			if err != nil {
				return err
			}
			server := mcpserver.NewServer(quiz, bootstrap.NewSnapshotStore(ctx, cfg), cfg.Pipeline.NumQuestions)
			return mcpserver.Serve(ctx, server)
		},
	}
}
