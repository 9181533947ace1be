package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/exporter"
	"github.com/chapala/instagram-story-metrics/internal/repositories/runs"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Exporter exporter.Client
	Runs     runs.Repository `optional:"true"`
	Logger   logger.Logger
	Config   *config.Config
}

// Server exposes the export pipeline over HTTP.
type Server struct {
	exporter exporter.Client
	runs     runs.Repository
	logger   logger.Logger
	config   *config.Config
	httpSrv  *http.Server
}

func New(opts Opts) *Server {
	s := &Server{
		exporter: opts.Exporter,
		runs:     opts.Runs,
		logger:   opts.Logger.WithComponent("Server"),
		config:   opts.Config,
	}

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Minute,
	}

	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/story-metrics", s.handleSingleExport)
		r.Post("/story-metrics/batch", s.handleBatchExport)
		r.Post("/story-metrics/all", s.handleAllExport)
		r.Get("/runs", s.handleListRuns)
	})

	return r
}

// Start begins serving in the background and returns immediately.
func (s *Server) Start() {
	go func() {
		s.logger.Info("Starting HTTP server", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server failed", "error", err)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpSrv.Shutdown(ctx)
}
