package main

import (
	"encoding/json"
	"fmt"

	"github.com/akolanti/quizcrafter/internal/adapter"
	"github.com/akolanti/quizcrafter/internal/api"
	"github.com/akolanti/quizcrafter/internal/bootstrap"
	"github.com/akolanti/quizcrafter/internal/data/store"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/rag/ingest"
	"github.com/spf13/cobra"
)

const (
	formatUI = "ui"
	formatDB = "db"
)

type generateOptions struct {
	file         string
	topic        string
	numQuestions int
	format       string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a quiz from a local document and print it as JSON",
		Example: "  quizctl generate --file biology.pdf --topic photosynthesis -n 5\n" +
			"  quizctl generate --file notes.docx --topic cells --format db",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.file, "file", "", "Document to generate questions from")
	cmd.Flags().StringVar(&opts.topic, "topic", "", "Topic used to retrieve context")
	cmd.Flags().IntVarP(&opts.numQuestions, "num-questions", "n", 0, "Number of questions (default from config)")
	cmd.Flags().StringVar(&opts.format, "format", formatUI, "Output format: ui or db")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	if opts.format != formatUI && opts.format != formatDB {
		return fmt.Errorf("unknown format %q, want %s or %s", opts.format, formatUI, formatDB)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	doc, err := ingest.ExtractDocument(opts.file)
	if err != nil {
		return err
	}
	quiz, err := bootstrap.NewQuizService(ctx, cfg)
	if err != nil {
		return err
	}

	n := opts.numQuestions
	if n == 0 {
		n = cfg.Pipeline.NumQuestions
	}
	result, err := quiz.GenerateQuiz(ctx, commonModels.QuizRequest{Document: doc, Topic: opts.topic, NumQuestions: n})
	if err != nil {
		return err
	}
	store.SaveSnapshotQuietly(ctx, bootstrap.NewSnapshotStore(ctx, cfg), result.Questions)

	var out any
	switch opts.format {
	case formatUI:
		out, _ = adapter.ToUIQuestions(ctx, result.Questions)
	case formatDB:
		questions, diagnostics := adapter.ToDBQuestions(ctx, result.Questions)
		out = api.DBQuizResponse{
			Questions:    questions,
			ResourceFile: doc.Path,
			Warnings:     append(result.Diagnostics, diagnostics...),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "    ")
	return encoder.Encode(out)
}
