package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/quizcrafter/internal/api"
	"github.com/akolanti/quizcrafter/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:       string(job.Status),
		QuizResponse: ToQuizResponse(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToQuizResponse(payload jobModel.JobPayload) *api.QuizResponse {
	if len(payload.Questions) == 0 {
		return nil
	}

	return &api.QuizResponse{
		Topic:       payload.Topic,
		Questions:   payload.Questions,
		Sources:     payload.Sources,
		Diagnostics: payload.Diagnostics,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return ErrorResponse(id, error, code, false)
}

// ErrorResponse is the shared error body of every endpoint.
func ErrorResponse(id string, message string, code int, retry bool) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: message,
			Retry:   retry,
		},
	}
}
