package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"huddle/internal/display/handler"
	"huddle/internal/sweep"
	"huddle/pkg/config"
	"huddle/pkg/contracts"
	"huddle/pkg/kafka"
	"huddle/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// Application assembles the process: the display HTTP server, the Kafka
// consumers feeding chat and sensor state, and the periodic sweeps. All of
// them stop together on shutdown.
type Application struct {
	cfg            *config.Config
	server         *http.Server
	healthHandler  http.Handler
	appHTTPHandler http.Handler

	producer  *kafka.Producer
	consumers []*kafka.Consumer
	runners   []*sweep.Runner

	cancelWorkers context.CancelFunc
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

func (a *Application) SetApp(appHandler contracts.Handler) {
	a.setHealthHandler()
	a.setAppHandler(appHandler)
	a.setAppServer()
}

// SetProducer hands the application the outbound producer so it is flushed
// and closed during shutdown.
func (a *Application) SetProducer(producer *kafka.Producer) {
	a.producer = producer
}

func (a *Application) AddConsumer(consumer *kafka.Consumer) {
	a.consumers = append(a.consumers, consumer)
}

func (a *Application) AddRunner(runner *sweep.Runner) {
	a.runners = append(a.runners, runner)
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	healthHandler := handler.NewHealthHandler(a.cfg.Client.Mongo, a.cfg.Log)
	healthHandler.RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
}

func (a *Application) setAppHandler(appHandler contracts.Handler) {
	appRouter := httprouter.New()
	appHandler.RegisterRoutes(appRouter)

	var appHTTPHandler http.Handler = appRouter
	appHTTPHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHTTPHandler)
	appHTTPHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.RequestLogging(a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.Recovery(a.cfg.Log)(appHTTPHandler)
	a.appHTTPHandler = appHTTPHandler
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHTTPHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	workerCtx, cancel := context.WithCancel(context.Background())
	a.cancelWorkers = cancel

	for _, runner := range a.runners {
		runner.Start(workerCtx)
	}

	consumerErrors := make(chan error, len(a.consumers))
	for _, consumer := range a.consumers {
		consumer := consumer
		go func() {
			consumerErrors <- consumer.Start(workerCtx)
		}()
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case err := <-consumerErrors:
		if err != nil {
			a.cfg.Log.Fatal("Kafka consumer failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	a.cancelWorkers()
	for _, consumer := range a.consumers {
		if err := consumer.Close(); err != nil {
			a.cfg.Log.Error("Consumer close failed", "error", err)
		}
	}
	for _, runner := range a.runners {
		runner.Wait()
	}
	a.cfg.Log.Info("Background workers stopped")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.cfg.Log.Error("Producer close failed", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
