package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag/llm"
)

// FormatExample is embedded in the system message. It is rendered from the same
// struct the parser decodes into so the field names cannot drift apart.
var FormatExample = []commonModels.Question{
	{
		Question:      "Question text here",
		Options:       []string{"A) Option text", "B) Option text", "C) Option text", "D) Option text"},
		CorrectAnswer: "A",
	},
	{
		Question:      "Question text here",
		Options:       []string{"A) Option text", "B) Option text", "C) Option text", "D) Option text"},
		CorrectAnswer: "B, D",
	},
}

const systemTemplate = `
# ROLE:
Act as an expert multiple-choice question generator for educational purposes.

# PROMPT:
You are given a context. Using only that context, write %[1]d multiple-choice questions. Every question has 4 answer options. Reply in JSON.

# INSTRUCTIONS:

- Generate **exactly %[1]d questions** based on the provided context.
- Each question must have **4 answer options** labeled **A, B, C, D**, with one or multiple correct answers.
- Cover the key details of the context.
- **Do not repeat** questions or options across the generated set.
- Give the correct answer as a **letter (A, B, C, or D)** in the ` + "`correct_answer`" + ` field.
- Follow the JSON format below. No extra text or explanations.

# JSON FORMAT:

` + "```json\n%[2]s\n```\n"

const userTemplate = "\n# CONTEXT:\n%s\n"

// SystemMessage renders the instructions for n questions.
func SystemMessage(n int) (string, error) {
	if n <= 0 {
		return "", quizErrors.NewInputError("numQuestions", "must be positive, got %d", n)
	}
	example, err := json.MarshalIndent(FormatExample, "", "    ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(systemTemplate, n, example), nil
}

func UserMessage(context string) string {
	return fmt.Sprintf(userTemplate, strings.TrimSpace(context))
}

// BuildMessages returns the system and user messages for one generation call.
// The user message carries the retrieved context and nothing else.
func BuildMessages(context string, n int) ([]llm.Message, error) {
	system, err := SystemMessage(n)
	if err != nil {
		return nil, err
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: UserMessage(context)},
	}, nil
}
