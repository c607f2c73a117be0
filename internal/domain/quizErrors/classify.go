package quizErrors

import (
	"errors"
	"net/http"
)

type Classification struct {
	Status  int
	Code    string
	Message string
	Retry   bool
}

// Classify maps a pipeline error to the status the HTTP boundary reports.
func Classify(err error) Classification {
	var (
		configErr    *ConfigError
		documentErr  *DocumentError
		uploadErr    *UploadIOError
		embeddingErr *EmbeddingServiceError
		generateErr  *GenerationError
		timeoutErr   *TimeoutError
		parseErr     *SchemaParseError
	)

	switch {
	case err == nil:
		return Classification{Status: http.StatusOK}
	case errors.As(err, &configErr):
		if configErr.UserInput {
			return Classification{Status: http.StatusBadRequest, Code: "INVALID_INPUT", Message: configErr.Error()}
		}
		return Classification{Status: http.StatusInternalServerError, Code: "CONFIG_ERROR", Message: "Service misconfigured"}
	case errors.As(err, &documentErr):
		return Classification{Status: http.StatusUnprocessableEntity, Code: "DOCUMENT_UNREADABLE", Message: "Document text could not be extracted"}
	case errors.As(err, &uploadErr):
		return Classification{Status: http.StatusInternalServerError, Code: "UPLOAD_IO_FAILURE", Message: "Upload could not be stored"}
	case errors.As(err, &timeoutErr):
		return Classification{Status: http.StatusGatewayTimeout, Code: "GENERATION_TIMEOUT", Message: "Question generation timed out", Retry: true}
	case errors.As(err, &embeddingErr):
		return Classification{Status: http.StatusBadGateway, Code: "EMBEDDING_FAILURE", Message: "Embedding service unavailable"}
	case errors.As(err, &generateErr):
		return Classification{Status: http.StatusBadGateway, Code: "LLM_GENERATION_FAILURE", Message: "Generation service unavailable"}
	case errors.As(err, &parseErr):
		return Classification{Status: http.StatusBadGateway, Code: "SCHEMA_PARSE_FAILURE", Message: "Model returned malformed questions", Retry: true}
	default:
		return Classification{Status: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: "Internal Server Error"}
	}
}
