package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	QuizInit       InternalStatus = "Init"
	DocumentLoad   InternalStatus = "DocumentLoad"
	QuizGeneration InternalStatus = "QuizGeneration"
	Formatting     InternalStatus = "Formatting"
	Error          InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeQuiz JobType = "Quiz"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Topic        string `json:"topic,omitempty"`
	NumQuestions int    `json:"num_questions,omitempty"`
	DocumentName string `json:"document_name,omitempty"`
	DocumentPath string `json:"document_path,omitempty"`

	Questions   []commonModels.DBQuestion `json:"questions,omitempty"`
	Sources     []string                  `json:"sources,omitempty"`
	Diagnostics []commonModels.Diagnostic `json:"diagnostics,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// SnapshotStore keeps the last generated question set for inspection.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, questions []commonModels.Question) error
	LoadSnapshot(ctx context.Context) ([]commonModels.Question, error)
}
