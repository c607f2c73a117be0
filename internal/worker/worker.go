package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/akolanti/quizcrafter/internal/job"
	"github.com/akolanti/quizcrafter/internal/metrics"
	"github.com/akolanti/quizcrafter/internal/rag"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

// DocumentLoader reads a stored upload back as text.
type DocumentLoader interface {
	LoadDocument(ctx context.Context, path string) (commonModels.Document, error)
}

var (
	_jobService        *job.Service
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	dispatcherChannel  chan bool
	currentWorkerCount int64
	logger             = logger_i.NewLogger("worker_pool")
	_quizService       rag.Service
	_documents         DocumentLoader
	_snapshots         jobModel.SnapshotStore
	minWorkerCount     = config.MinWorkerCount
	idleWorkerTimeout  = config.IdleWorkerTimeout
)

func InitServices(jobService *job.Service, quizService rag.Service, documents DocumentLoader, snapshots jobModel.SnapshotStore) {
	_jobService = jobService
	_quizService = quizService
	_documents = documents
	_snapshots = snapshots
	dispatcherChannel = jobService.DispatcherChannel
}

func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger.Info("Initializing worker pool")
	go dispatcher()
}

func dispatcher() {
	createWorker()
	logger.Info("Dispatcher started")
	for range dispatcherChannel {
		if atomic.LoadInt64(&currentWorkerCount) < config.MaxWorkerCount {
			logger.Info("Creating new worker", "workerCount", atomic.LoadInt64(&currentWorkerCount))
			createWorker()
		}
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	go worker()
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	logger.Info("Created new worker")
}

func worker() {
	for {
		select {
		case currentJob := <-_jobService.JobChannel:
			metrics.DecrementJobsInQueue()
			executeJob(currentJob)

		case <-stopWorkerChannel:
			removeWorker("Stop worker signal received")

			return

		case <-time.After(idleWorkerTimeout):
			// idle for too long, retire unless the pool would drop below the minimum
			if count, ok := reserveRetirement(); ok {
				releaseWorker("Idle worker timeout", count)
				return
			}
		}
	}
}

// reserveRetirement takes one worker off the count only while the pool stays at
// or above minWorkerCount. Idle workers time out together, so the check and the
// decrement must be one step.
func reserveRetirement() (int64, bool) {
	for {
		count := atomic.LoadInt64(&currentWorkerCount)
		if count <= atomic.LoadInt64(&minWorkerCount) {
			return count, false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, count, count-1) {
			return count - 1, true
		}
	}
}
