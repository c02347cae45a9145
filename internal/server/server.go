package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cicconee/marine-forecast/internal/forecast"
	"github.com/cicconee/marine-forecast/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	Router    *chi.Mux
	Addr      string
	Logger    *log.Logger
	Forecasts *forecast.Service
	Pages     *web.Pages

	// Interval of the background refresh worker. Zero leaves
	// generation to POST /api/run-script only.
	Refresh time.Duration

	handler      *Handler
	worker       *worker
	workerKillCh chan<- struct{}
	wg           *sync.WaitGroup
}

func (s *Server) addr() string {
	if s.Addr == "" {
		s.Addr = "8080"
	}

	return fmt.Sprintf(":%s", s.Addr)
}

func (s *Server) init() {
	s.handler = NewHandler(s.Logger)
	s.handler.forecasts = s.Forecasts
	s.handler.pages = s.Pages
	s.setRoutes()

	s.wg = &sync.WaitGroup{}

	if s.Refresh > 0 {
		workerKillCh := make(chan struct{}, 1)
		s.workerKillCh = workerKillCh
		s.worker = &worker{
			forecasts: s.Forecasts,
			logger:    s.Logger,
			d:         s.Refresh,
			killCh:    workerKillCh,
		}
	}
}

func (s *Server) setRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(RequestLogger(s.Logger))

	s.Router.Get("/", s.handler.HandlePage(web.PageHome, "Home"))
	s.Router.Get("/about", s.handler.HandlePage(web.PageAbout, "About"))
	s.Router.Get("/services", s.handler.HandlePage(web.PageServices, "Services"))
	s.Router.Handle("/static/*", http.StripPrefix("/static/", web.Static()))

	s.Router.Get("/api/data", s.handler.HandleGetData())
	s.Router.Post("/api/run-script", s.handler.HandleRunScript())
	s.Router.Get("/api/health", s.handler.HandleHealth())
}

func (s *Server) run(runFn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		runFn()
	}()
}

func (s *Server) listenAndServe() error {
	httpServer := &http.Server{
		Addr:    s.addr(),
		Handler: s.Router,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	startCh := make(chan error, 1)
	go func() {
		s.Logger.Printf("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			startCh <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	// Wait for either a shutdown signal or an error if the server
	// cannot start.
	select {
	case err := <-startCh:
		s.stopWorker()
		return err
	case sig := <-shutdownCh:
		s.Logger.Printf("shutting down (signal=%s)", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 7*time.Second)
		defer func() {
			defer cancel()

			s.stopWorker()

			// Wait for all resources to stop.
			s.wg.Wait()
		}()

		// Gracefully shutdown the http server.
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}

func (s *Server) stopWorker() {
	if s.workerKillCh != nil {
		s.workerKillCh <- struct{}{}
	}
}

func (s *Server) validate() error {
	if s.Router == nil {
		return errors.New("router is nil")
	}

	if s.Logger == nil {
		return errors.New("logger is nil")
	}

	if s.Forecasts == nil {
		return errors.New("forecasts is nil")
	}

	if s.Pages == nil {
		return errors.New("pages is nil")
	}

	if s.Refresh < 0 {
		return errors.New("refresh is negative")
	}

	return nil
}

func (s *Server) Start() error {
	if err := s.validate(); err != nil {
		return err
	}

	s.init()
	if s.worker != nil {
		s.run(func() {
			s.worker.start()
		})
	}

	return s.listenAndServe()
}
