package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/rag/parser"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

const (
	DBQuestionType  = "MCQ"
	DBQuestionMarks = 1
)

var letterIndex = map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}

var logger = logger_i.NewLogger("format_adapter")

// ToUIQuestions marks an option correct when it starts with correct_answer.
// Multi letter answers such as "B, D" match nothing and are reported.
func ToUIQuestions(ctx context.Context, questions []commonModels.Question) ([]commonModels.UIQuestion, []commonModels.Diagnostic) {
	log := logger.FromContext(ctx)
	out := make([]commonModels.UIQuestion, 0, len(questions))
	var diags []commonModels.Diagnostic

	for i, q := range questions {
		answers := make([]commonModels.Answer, 0, len(q.Options))
		for _, opt := range q.Options {
			answers = append(answers, commonModels.Answer{
				Text:    opt,
				Correct: strings.HasPrefix(opt, q.CorrectAnswer),
			})
		}
		if len(parser.AnswerLetters(q.CorrectAnswer)) > 1 {
			log.Warn("Multi letter answer passed through", "question", i, "correct_answer", q.CorrectAnswer)
			diags = append(diags, commonModels.Diagnostic{
				QuestionIndex: i,
				Code:          commonModels.DiagAmbiguousAnswer,
				Message:       fmt.Sprintf("correct_answer %q names several options", q.CorrectAnswer),
			})
		}
		out = append(out, commonModels.UIQuestion{Question: q.Question, Answers: answers})
	}
	return out, diags
}

// ToDBQuestions stores the full text of the correct option. An answer that
// cannot be resolved is stored as "" and reported.
func ToDBQuestions(ctx context.Context, questions []commonModels.Question) ([]commonModels.DBQuestion, []commonModels.Diagnostic) {
	log := logger.FromContext(ctx)
	out := make([]commonModels.DBQuestion, 0, len(questions))
	var diags []commonModels.Diagnostic

	for i, q := range questions {
		answer, ok := resolveAnswer(q)
		if !ok {
			log.Warn("Correct answer could not be resolved", "question", i, "correct_answer", q.CorrectAnswer)
			diags = append(diags, commonModels.Diagnostic{
				QuestionIndex: i,
				Code:          commonModels.DiagUnresolvedAnswer,
				Message:       fmt.Sprintf("correct_answer %q matches no option", q.CorrectAnswer),
			})
		}
		out = append(out, commonModels.DBQuestion{
			Type:          DBQuestionType,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: answer,
			Marks:         DBQuestionMarks,
		})
	}
	return out, diags
}

func resolveAnswer(q commonModels.Question) (string, bool) {
	letter := strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
	if idx, ok := letterIndex[letter]; ok && idx < len(q.Options) {
		return q.Options[idx], true
	}
	if letter == "" {
		return "", false
	}
	for _, opt := range q.Options {
		if strings.HasPrefix(strings.TrimSpace(opt), letter+")") {
			return opt, true
		}
	}
	return "", false
}
