package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fenced = "```json\n[{\"question\":\"Q\",\"options\":[\"A) a\",\"B) b\",\"C) c\",\"D) d\"],\"correct_answer\":\"B\"}]\n```"

func TestParse_FencedArray(t *testing.T) {
	questions, err := Parse(context.Background(), fenced, 5)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Q", questions[0].Question)
	assert.Equal(t, "B", questions[0].CorrectAnswer)
	assert.Equal(t, []string{"A) a", "B) b", "C) c", "D) d"}, questions[0].Options)
}

func TestParse_SurroundingChatter(t *testing.T) {
	raw := "Sure! Here is your quiz:\n" + fenced + "\nGood luck."
	questions, err := Parse(context.Background(), raw, 5)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestParse_TruncatesToRequested(t *testing.T) {
	raw := `[
	{"question":"one","options":["A) a","B) b","C) c","D) d"],"correct_answer":"A"},
	{"question":"two","options":["A) a","B) b","C) c","D) d"],"correct_answer":"B"},
	{"question":"three","options":["A) a","B) b","C) c","D) d"],"correct_answer":"C"}
	]`
	questions, err := Parse(context.Background(), raw, 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "one", questions[0].Question)
	assert.Equal(t, "two", questions[1].Question)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose only", "I cannot answer that."},
		{"truncated", `[{"question":"Q","options":["A) a","B) b"`},
		{"empty array", `[]`},
		{"object not array", `{"question":"Q"}`},
		{"three options", `[{"question":"Q","options":["A) a","B) b","C) c"],"correct_answer":"A"}]`},
		{"missing answer", `[{"question":"Q","options":["A) a","B) b","C) c","D) d"]}]`},
		{"blank question", `[{"question":"  ","options":["A) a","B) b","C) c","D) d"],"correct_answer":"A"}]`},
		{"numeric answer", `[{"question":"Q","options":["A) a","B) b","C) c","D) d"],"correct_answer":2}]`},
		{"reversed brackets", `] nothing [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := Parse(context.Background(), tt.raw, 5)
			assert.Nil(t, questions)
			require.Error(t, err)
			assert.True(t, errors.Is(err, quizErrors.ErrNoResult))

			var parseErr *quizErrors.SchemaParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.raw, parseErr.Raw)
		})
	}
}

func TestAnswerLetters(t *testing.T) {
	assert.Equal(t, []string{"B"}, AnswerLetters("B"))
	assert.Equal(t, []string{"B", "D"}, AnswerLetters("B, D"))
	assert.Equal(t, []string{"C"}, AnswerLetters("C) Paris"))
	assert.Equal(t, []string{"A"}, AnswerLetters("a"))
	assert.Empty(t, AnswerLetters("Paris"))
}

func TestCheckInvariants(t *testing.T) {
	clean := commonModels.Question{
		Question:      "Q",
		Options:       []string{"A) a", "B) b", "C) c", "D) d"},
		CorrectAnswer: "B, D",
	}
	assert.Empty(t, CheckInvariants(context.Background(), []commonModels.Question{clean}))

	broken := []commonModels.Question{
		clean,
		{Question: "dup", Options: []string{"A) a", "A) a", "C) c", "D) d"}, CorrectAnswer: "A"},
		{Question: "label", Options: []string{"a", "B) b", "C) c", "D) d"}, CorrectAnswer: "B"},
		{Question: "letter", Options: []string{"A) a", "B) b", "C) c", "D) d"}, CorrectAnswer: "E"},
	}
	diags := CheckInvariants(context.Background(), broken)

	codes := map[int][]string{}
	for _, d := range diags {
		codes[d.QuestionIndex] = append(codes[d.QuestionIndex], d.Code)
	}
	assert.NotContains(t, codes, 0)
	assert.Contains(t, codes[1], commonModels.DiagDuplicateOption)
	assert.Contains(t, codes[1], commonModels.DiagMissingLabel)
	assert.Contains(t, codes[2], commonModels.DiagMissingLabel)
	assert.Equal(t, []string{commonModels.DiagUnknownAnswer}, codes[3])
}
