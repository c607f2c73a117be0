// @title           QuizCrafter API
// @version         1.0
// @description     Generates multiple-choice quizzes from uploaded documents
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/akolanti/quizcrafter/cmd/api/docs"
	"github.com/akolanti/quizcrafter/internal/bootstrap"
	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/data/store"
	jobmodel "github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/akolanti/quizcrafter/internal/handlers"
	"github.com/akolanti/quizcrafter/internal/job"
	"github.com/akolanti/quizcrafter/internal/middleware"
	"github.com/akolanti/quizcrafter/internal/server"
	"github.com/akolanti/quizcrafter/internal/worker"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

var (
	configPath        string
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger_i.Init(config.IS_PROD, "")
		logger_i.NewLogger("main").Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}

	logger_i.Init(cfg.Log.Prod, cfg.Log.Level)
	var logger = logger_i.NewLogger("main")

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	jobStore, err := bootstrap.NewJobStore(serviceContext, cfg)
	if err != nil {
		logger.Error("Job store unavailable", "error", err)
		return
	}
	logger.Info("Starting job service")
	service := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	})

	quizService, err := bootstrap.NewQuizService(serviceContext, cfg)
	if err != nil {
		logger.Error("Quiz pipeline failed to initialize. Shutting down.", "error", err)
		return
	}
	uploads, err := store.NewUploadStore(cfg.Server.UploadDir)
	if err != nil {
		logger.Error("Upload directory unavailable", "dir", cfg.Server.UploadDir, "error", err)
		return
	}
	snapshots := bootstrap.NewSnapshotStore(serviceContext, cfg)

	handler := handlers.NewHandler(handlers.Deps{
		Quiz:                quizService,
		Uploads:             uploads,
		Snapshots:           snapshots,
		Jobs:                service,
		DefaultNumQuestions: cfg.Pipeline.NumQuestions,
	})

	//init worker pool
	worker.InitServices(service, quizService, uploads, snapshots)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	router := server.NewRouter(handler, middleware.NewChain(cfg.Server.RateLimit))
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(cfg.Server.ListenAddr, router)

	<-stopExecution
	logger.Info("Server stopped")
}
