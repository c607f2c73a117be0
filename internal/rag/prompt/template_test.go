package prompt

import (
	"context"
	"strings"
	"testing"

	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag/llm"
	"github.com/akolanti/quizcrafter/internal/rag/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemMessage(t *testing.T) {
	msg, err := SystemMessage(3)
	require.NoError(t, err)
	assert.Contains(t, msg, "# ROLE:")
	assert.Contains(t, msg, "# INSTRUCTIONS:")
	assert.Contains(t, msg, "Generate **exactly 3 questions**")
	assert.Contains(t, msg, "No extra text or explanations")
	assert.Contains(t, msg, `"correct_answer": "B, D"`)
}

func TestSystemMessage_RejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := SystemMessage(n)
		var cfgErr *quizErrors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.True(t, cfgErr.UserInput)
		assert.Equal(t, "numQuestions", cfgErr.Field)
	}
}

// The example shown to the model must itself be accepted by the parser.
func TestFormatExample_ParsesBack(t *testing.T) {
	msg, err := SystemMessage(2)
	require.NoError(t, err)

	example := msg[strings.Index(msg, "# JSON FORMAT:"):]
	questions, err := parser.Parse(context.Background(), example, 2)
	require.NoError(t, err)
	assert.Equal(t, FormatExample, questions)
}

func TestBuildMessages(t *testing.T) {
	messages, err := BuildMessages("  Mitochondria make ATP.\n", 4)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	assert.Equal(t, llm.RoleUser, messages[1].Role)
	assert.Equal(t, "\n# CONTEXT:\nMitochondria make ATP.\n", messages[1].Content)
	assert.NotContains(t, messages[1].Content, "# INSTRUCTIONS:")
}
