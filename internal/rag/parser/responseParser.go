package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://question-set.json"

// questionSetSchema mirrors commonModels.Question. Blank strings are rejected
// through the \S pattern.
const questionSetSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["question", "options", "correct_answer"],
    "properties": {
      "question": {"type": "string", "pattern": "\\S"},
      "options": {
        "type": "array",
        "minItems": 4,
        "maxItems": 4,
        "items": {"type": "string", "pattern": "\\S"}
      },
      "correct_answer": {"type": "string", "pattern": "[A-Za-z]"}
    }
  }
}`

var (
	errNoArray = errors.New("no JSON array in model output")

	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error

	logger = logger_i.NewLogger("response_parser")
)

func questionSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(questionSetSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// ExtractArray returns the text between the first '[' and the last ']'.
// Code fences and chatter around the array are dropped with it.
func ExtractArray(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// Parse turns raw model output into questions. Anything that is not a JSON
// array of well formed questions yields a *quizErrors.SchemaParseError, which
// matches quizErrors.ErrNoResult. When n > 0 only the first n questions are kept.
func Parse(ctx context.Context, raw string, n int) ([]commonModels.Question, error) {
	log := logger.FromContext(ctx)
	fail := func(err error) ([]commonModels.Question, error) {
		log.Warn("Model output rejected", "reason", err, "raw", raw)
		return nil, &quizErrors.SchemaParseError{Raw: raw, Err: err}
	}

	payload, ok := ExtractArray(raw)
	if !ok {
		return fail(errNoArray)
	}

	decoded, err := jsonschema.UnmarshalJSON(strings.NewReader(payload))
	if err != nil {
		return fail(fmt.Errorf("invalid JSON: %w", err))
	}
	schema, err := questionSchema()
	if err != nil {
		return fail(err)
	}
	if err := schema.Validate(decoded); err != nil {
		return fail(fmt.Errorf("schema validation failed: %w", err))
	}

	var questions []commonModels.Question
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return fail(fmt.Errorf("decode questions: %w", err))
	}

	if n > 0 && len(questions) > n {
		log.Info("Dropping extra questions", "received", len(questions), "requested", n)
		questions = questions[:n]
	}
	return questions, nil
}

// AnswerLetters returns the single letter tokens of a correct_answer value,
// upper cased. "B, D" gives [B D], "C) Paris" gives [C].
func AnswerLetters(answer string) []string {
	var letters []string
	for _, token := range strings.FieldsFunc(answer, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if len([]rune(token)) == 1 {
			letters = append(letters, strings.ToUpper(token))
		}
	}
	return letters
}

// CheckInvariants reports questions that parsed but break the quiz contract:
// duplicate options, unlabeled options, answers naming a missing label.
func CheckInvariants(ctx context.Context, questions []commonModels.Question) []commonModels.Diagnostic {
	log := logger.FromContext(ctx)
	var diags []commonModels.Diagnostic
	add := func(i int, code string, format string, args ...any) {
		d := commonModels.Diagnostic{QuestionIndex: i, Code: code, Message: fmt.Sprintf(format, args...)}
		log.Warn("Question invariant violated", "question", i, "code", code, "detail", d.Message)
		diags = append(diags, d)
	}

	for i, q := range questions {
		seen := make(map[string]bool, len(q.Options))
		labels := make(map[string]bool, len(q.Options))
		for j, opt := range q.Options {
			trimmed := strings.TrimSpace(opt)
			if seen[trimmed] {
				add(i, commonModels.DiagDuplicateOption, "option %d repeats %q", j, trimmed)
			}
			seen[trimmed] = true

			expected := string(rune('A' + j))
			if !strings.HasPrefix(trimmed, expected+")") {
				add(i, commonModels.DiagMissingLabel, "option %d does not start with %q", j, expected+")")
			}
			if idx := strings.Index(trimmed, ")"); idx > 0 {
				labels[strings.ToUpper(trimmed[:idx])] = true
			}
		}

		letters := AnswerLetters(q.CorrectAnswer)
		if len(letters) == 0 {
			add(i, commonModels.DiagUnknownAnswer, "correct_answer %q names no option letter", q.CorrectAnswer)
		}
		for _, l := range letters {
			if !labels[l] {
				add(i, commonModels.DiagUnknownAnswer, "correct_answer letter %q labels no option", l)
			}
		}
	}
	return diags
}
