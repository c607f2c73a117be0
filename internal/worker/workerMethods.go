package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/quizcrafter/internal/adapter"
	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/data/store"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	jobmodel "github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/metrics"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobExecutionTimeout)
	defer cancel()
	log := logger.FromContext(ctx).With("jobId", job.Id)
	log.Debug("Processing job")

	job.Status = jobmodel.JobStatusRunning
	saveJobState(ctx, job, log)

	job = processQuiz(ctx, job, log)

	job.EndTime = time.Now()
	if job.Status != jobmodel.JobStatusError {
		job.Status = jobmodel.JobStatusComplete
		job.CurrentStep = jobmodel.Complete
	}
	saveJobState(context.WithoutCancel(ctx), job, log)
	log.Info("Job finished", "status", job.Status, "elapsed", time.Since(start))
}

func processQuiz(ctx context.Context, job jobmodel.Job, log *logger_i.Logger) jobmodel.Job {
	job.CurrentStep = jobmodel.DocumentLoad
	doc, err := _documents.LoadDocument(ctx, job.JobPayload.DocumentPath)
	if err != nil {
		return jobError(job, err, log)
	}

	job.CurrentStep = jobmodel.QuizGeneration
	saveJobState(ctx, job, log)
	result, err := _quizService.GenerateQuiz(ctx, commonModels.QuizRequest{
		Document:     doc,
		Topic:        job.JobPayload.Topic,
		NumQuestions: job.JobPayload.NumQuestions,
	})
	if err != nil {
		return jobError(job, err, log)
	}
	store.SaveSnapshotQuietly(ctx, _snapshots, result.Questions)

	job.CurrentStep = jobmodel.Formatting
	questions, diagnostics := adapter.ToDBQuestions(ctx, result.Questions)
	metrics.AddGeneratedQuestions("db", len(questions))

	job.JobPayload.Questions = questions
	job.JobPayload.Sources = result.Sources
	job.JobPayload.Diagnostics = append(result.Diagnostics, diagnostics...)
	return job
}

func jobError(job jobmodel.Job, err error, log *logger_i.Logger) jobmodel.Job {
	class := quizErrors.Classify(err)
	log.Error(class.Code, "error", err, "step", job.CurrentStep)

	job.Error = jobmodel.JobError{
		Code:    class.Status,
		Message: class.Message,
		Retry:   class.Retry,
	}
	job.Status = jobmodel.JobStatusError
	job.CurrentStep = jobmodel.Error
	return job
}

func removeWorker(reason string) {
	releaseWorker(reason, atomic.AddInt64(&currentWorkerCount, -1))
}

// releaseWorker finishes a worker whose slot is already off the count.
func releaseWorker(reason string, count int64) {
	workerWaitGroup.Done()
	logger.Info("Removed worker", "reason", reason, "workerCount", count)
	metrics.DecrementActiveWorkerCount()
}

func saveJobState(ctx context.Context, job jobmodel.Job, log *logger_i.Logger) {
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		log.Error("Failed to update job state", "err", err)
	}
}
