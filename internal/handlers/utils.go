package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/akolanti/quizcrafter/internal/adapter"
	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

// writeClassifiedError reports a pipeline error with the status its kind maps to.
func writeClassifiedError(ctx context.Context, w http.ResponseWriter, id string, err error) {
	class := quizErrors.Classify(err)
	logRH.FromContext(ctx).Warn("Request failed", "code", class.Code, "status", class.Status, "error", err)
	writeJsonResponse(w, class.Status, adapter.ErrorResponse(id, class.Message, class.Status, class.Retry))
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.FromContext(ctx).Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

func traceId(ctx context.Context) string {
	id, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return id
}

// parseNumQuestions returns fallback for an empty value.
func parseNumQuestions(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, quizErrors.NewInputError("numQuestions", "not a number: %q", value)
	}
	if n <= 0 {
		return 0, quizErrors.NewInputError("numQuestions", "must be positive, got %d", n)
	}
	return n, nil
}

func parseTopic(value string) (string, error) {
	topic := strings.TrimSpace(value)
	if topic == "" {
		return "", quizErrors.NewInputError("topic", "is required")
	}
	return topic, nil
}

// parseForm accepts both multipart and url encoded bodies.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(config.MaxUploadSize)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return quizErrors.NewInputError("form", "file too large or bad request: %v", err)
	}
	return nil
}

func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, quizErrors.NewInputError("file", "could not retrieve file: %v", err)
	}
	return file, header, nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		logRH.Error("Couldn't close the upload reader", "error", err)
	}
}
