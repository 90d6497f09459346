// Package server exposes the career kit over an HTTP JSON API.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikogura/career-kit/pkg/history"
	"github.com/nikogura/career-kit/pkg/questions"
	"github.com/nikogura/career-kit/pkg/scorer"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	maxRequestBodySize = 1 << 20
	shutdownTimeout    = 5 * time.Second
	readHeaderTimeout  = 10 * time.Second
)

// Deps are the collaborators a Server needs. Bank and History are required.
type Deps struct {
	Bank    *questions.Bank
	History history.Store
	// Rand drives question sampling. It is wrapped for concurrent use; nil
	// means a randomly seeded generator.
	Rand   questions.Rand
	Logger *slog.Logger
}

// Server serves the HTTP API.
type Server struct {
	bank     *questions.Bank
	sampler  *questions.Sampler
	scorer   *scorer.Scorer
	history  history.Store
	sessions *registry
	logger   *slog.Logger
}

// New creates a server from its dependencies.
func New(deps Deps) (s *Server) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rng := deps.Rand
	if rng == nil {
		rng = questions.NewRand(uint64(time.Now().UnixNano()))
	}

	s = &Server{
		bank:     deps.Bank,
		sampler:  questions.NewSampler(deps.Bank, questions.NewLockedRand(rng)),
		scorer:   scorer.NewScorer(),
		history:  deps.History,
		sessions: newRegistry(),
		logger:   logger,
	}
	return s
}

// Handler returns the API router.
func (s *Server) Handler() (handler http.Handler) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/resumes", s.handleRenderResume)
		r.Post("/ats", s.handleScore)

		r.Post("/cover-letters", s.handleRenderCoverLetter)
		r.Get("/cover-letters", s.handleListCoverLetters)

		r.Get("/questions", s.handleListQuestions)
		r.Get("/questions/random", s.handleRandomQuestion)
		r.Get("/tips", s.handleTips)

		r.Post("/mock-interviews", s.handleStartInterview)
		r.Get("/mock-interviews/{id}", s.handleGetInterview)
		r.Delete("/mock-interviews/{id}", s.handleDeleteInterview)
		r.Post("/mock-interviews/{id}/reveal", s.handleRevealAnswer)
		r.Post("/mock-interviews/{id}/next", s.handleNextQuestion)

		r.Get("/applications", s.handleListApplications)
		r.Post("/applications", s.handleSaveApplication)
		r.Get("/applications/stats", s.handleApplicationStats)

		r.Get("/portfolio", s.handlePortfolio)
		r.Get("/portfolio/projects", s.handleListProjects)
		r.Post("/portfolio/projects", s.handleSaveProject)
		r.Get("/portfolio/skills", s.handleListSkills)
		r.Post("/portfolio/skills", s.handleSaveSkill)
	})

	handler = r
	return handler
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) (err error) {
	var listener net.Listener
	listener, err = net.Listen("tcp", addr)
	if err != nil {
		err = errors.Wrapf(err, "failed to listen on %s", addr)
		return err
	}

	err = s.Serve(ctx, listener)
	return err
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) (err error) {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("career-kit API listening", "addr", listener.Addr().String())
		serveErr := srv.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return errors.Wrap(serveErr, "server error")
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr := srv.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			return errors.Wrap(shutdownErr, "failed to shut down server")
		}
		return nil
	})

	err = g.Wait()
	return err
}

// logRequests logs one line per request once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
