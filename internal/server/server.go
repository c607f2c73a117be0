package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/quizcrafter/internal/adapter/utils"
	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/handlers"
	"github.com/akolanti/quizcrafter/internal/middleware"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

var (
	server  *http.Server
	_logger = logger_i.NewLogger("server")
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

// NewRouter mounts every endpoint behind the middleware chain.
func NewRouter(h *handlers.Handler, chain *middleware.Chain) http.Handler {
	r := utils.NewRouter()
	r.Router.Use(middleware.CORS)

	r.Router.Get("/healthz", chain.Wrap(h.HealthHandler))
	r.PostBoth("/upload/", chain.Wrap(h.UploadHandler))
	r.PostBoth("/generate-questions/", chain.Wrap(h.GenerateQuestionsHandler))
	r.PostBoth("/generate-quiz-for-db/", chain.Wrap(h.GenerateQuizForDBHandler))
	r.PostBoth("/jobs/quiz", chain.Wrap(h.PostQuizJobHandler))
	r.Router.Get("/status/{id}", chain.Wrap(h.GetStatusHandler))
	return r.Router
}

func CreateServer(listenAddr string, handler http.Handler) {
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
