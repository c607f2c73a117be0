package job

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/akolanti/quizcrafter/internal/metrics"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
	logger            *logger_i.Logger
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
		logger:            logger_i.NewLogger("job_service"),
	}
}

// NewQuizJob returns a queued quiz job for a stored document.
func NewQuizJob(id string, traceId string, payload jobModel.JobPayload) jobModel.Job {
	return jobModel.Job{
		Id:          id,
		TraceId:     traceId,
		JobType:     jobModel.JobTypeQuiz,
		JobPayload:  payload,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.QuizInit,
	}
}

// Submit stores the job as queued and hands it to the worker pool. The send
// blocks while the buffer is full so the system cannot be overwhelmed; it gives
// up when ctx is done.
func (s *Service) Submit(ctx context.Context, newJob jobModel.Job) error {
	log := s.logger.FromContext(ctx).With("jobId", newJob.Id)

	if err := s.JobStore.SaveJob(ctx, newJob); err != nil {
		log.Error("Failed to save queued job", "error", err)
		return err
	}

	select {
	case s.JobChannel <- newJob:
	case <-ctx.Done():
		log.Warn("Job was not queued", "error", ctx.Err())
		s.JobStore.DeleteJob(context.WithoutCancel(ctx), newJob.Id)
		return ctx.Err()
	}
	metrics.IncrementJobsInQueue()
	log.Info("Created new job")

	// a new worker every few requests, idle workers retire on their own so
	// at most times a single worker is running
	accurateCount := atomic.AddInt64(&s.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount()
		log.Debug("Signalling dispatcher", "requestCount", accurateCount)
		select {
		case s.DispatcherChannel <- true:
		default:
			// a signal is already pending
		}
	}
	return nil
}

func (s *Service) GetJob(ctx context.Context, id string) (jobModel.Job, bool) {
	if id == "" {
		return jobModel.Job{}, false
	}
	return s.JobStore.GetJob(ctx, id)
}
