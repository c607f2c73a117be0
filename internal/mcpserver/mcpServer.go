// Package mcpserver exposes quiz generation as an MCP tool so agents can call
// the same pipeline the HTTP API uses.
package mcpserver

import (
	"context"

	"github.com/akolanti/quizcrafter/internal/adapter"
	"github.com/akolanti/quizcrafter/internal/api"
	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/data/store"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/akolanti/quizcrafter/internal/metrics"
	"github.com/akolanti/quizcrafter/internal/rag"
	"github.com/akolanti/quizcrafter/internal/rag/ingest"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const ToolGenerateQuiz = "generate_quiz"

type GenerateQuizInput struct {
	File         string `json:"file" jsonschema:"path of the document on the server host"`
	Topic        string `json:"topic" jsonschema:"topic used to retrieve context from the document"`
	NumQuestions int    `json:"numQuestions,omitempty" jsonschema:"number of questions, defaults to 5"`
}

type tools struct {
	quiz                rag.Service
	snapshots           jobModel.SnapshotStore
	defaultNumQuestions int
	logger              *logger_i.Logger
}

// NewServer returns an MCP server with the generate_quiz tool registered.
func NewServer(quiz rag.Service, snapshots jobModel.SnapshotStore, defaultNumQuestions int) *mcp.Server {
	if defaultNumQuestions <= 0 {
		defaultNumQuestions = config.DefaultNumQuestions
	}
	t := &tools{
		quiz:                quiz,
		snapshots:           snapshots,
		defaultNumQuestions: defaultNumQuestions,
		logger:              logger_i.NewLogger("mcp_server"),
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "quizcrafter", Version: "v1.0.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolGenerateQuiz,
		Description: "Generate multiple-choice questions about a topic from a PDF, DOCX, ODT, RTF or text document.",
	}, t.generateQuiz)
	return server
}

// Serve runs the server over stdin and stdout until the client disconnects.
func Serve(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (t *tools) generateQuiz(ctx context.Context, _ *mcp.CallToolRequest, in GenerateQuizInput) (*mcp.CallToolResult, api.DBQuizResponse, error) {
	log := t.logger.FromContext(ctx).With("file", in.File, "topic", in.Topic)

	doc, err := ingest.ExtractDocument(in.File)
	if err != nil {
		log.Warn("Document rejected", "error", err)
		return nil, api.DBQuizResponse{}, err
	}

	n := in.NumQuestions
	if n == 0 {
		n = t.defaultNumQuestions
	}
	result, err := t.quiz.GenerateQuiz(ctx, commonModels.QuizRequest{Document: doc, Topic: in.Topic, NumQuestions: n})
	if err != nil {
		log.Error("Quiz generation failed", "error", err)
		return nil, api.DBQuizResponse{}, err
	}
	store.SaveSnapshotQuietly(ctx, t.snapshots, result.Questions)

	questions, diagnostics := adapter.ToDBQuestions(ctx, result.Questions)
	metrics.AddGeneratedQuestions("mcp", len(questions))
	log.Info("Quiz generated over MCP", "questions", len(questions))

	return nil, api.DBQuizResponse{
		Questions:    questions,
		ResourceFile: doc.Path,
		Warnings:     append(result.Diagnostics, diagnostics...),
	}, nil
}
