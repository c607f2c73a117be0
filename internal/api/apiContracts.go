package api

import (
	"time"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type QuizResponse struct {
	Topic       string                    `json:"topic" example:"photosynthesis"`
	Questions   []commonModels.DBQuestion `json:"questions"`
	Sources     []string                  `json:"sources,omitempty"`
	Diagnostics []commonModels.Diagnostic `json:"warnings,omitempty"`
}

type Result struct {
	Status       string        `json:"status"`
	QuizResponse *QuizResponse `json:"quiz,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type UploadResponse struct {
	Message string `json:"message" example:"File uploaded successfully"`
}

// DBQuizResponse is the body of /generate-quiz-for-db/.
type DBQuizResponse struct {
	Questions    []commonModels.DBQuestion `json:"questions"`
	ResourceFile string                    `json:"resourceFile" example:"uploads/biology.pdf"`
	Warnings     []commonModels.Diagnostic `json:"warnings,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// requests---------------------

// QuizForm documents the multipart fields accepted by the quiz endpoints.
type QuizForm struct {
	Topic        string `json:"topic" validate:"required"`
	NumQuestions int    `json:"numQuestions,omitempty" example:"5"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
