package quizErrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoResult is the sentinel behind every SchemaParseError: the model answered
// but nothing usable could be parsed out of it.
var ErrNoResult = errors.New("no result")

// ConfigError indicates an invalid parameter. UserInput is set when the bad value
// came from a request rather than from the service configuration.
type ConfigError struct {
	Field     string
	UserInput bool
	Err       error
}

func NewConfigError(field string, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Err: fmt.Errorf(format, args...)}
}

func NewInputError(field string, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, UserInput: true, Err: fmt.Errorf(format, args...)}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// UploadIOError indicates the uploaded file could not be written.
type UploadIOError struct {
	Path string
	Err  error
}

func (e *UploadIOError) Error() string {
	return fmt.Sprintf("upload write to %q failed: %v", e.Path, e.Err)
}

func (e *UploadIOError) Unwrap() error { return e.Err }

// DocumentError indicates the stored document could not be read as text.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %q could not be extracted: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// EmbeddingServiceError indicates the embedding backend was unreachable or failed.
type EmbeddingServiceError struct {
	Err error
}

func (e *EmbeddingServiceError) Error() string {
	return fmt.Sprintf("embedding service failed: %v", e.Err)
}

func (e *EmbeddingServiceError) Unwrap() error { return e.Err }

// GenerationError indicates the generation backend was unreachable or failed.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("generation with %s failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// TimeoutError indicates the generation call exceeded its deadline.
type TimeoutError struct {
	After time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generation timed out after %s", e.After)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// SchemaParseError indicates the model output was not a valid question array.
// Raw holds the untouched model text for diagnosis.
type SchemaParseError struct {
	Raw string
	Err error
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("model output does not match the question schema: %v", e.Err)
}

func (e *SchemaParseError) Unwrap() []error { return []error{ErrNoResult, e.Err} }
