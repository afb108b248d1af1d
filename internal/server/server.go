package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aescanero/dago-prompt-dashboard/internal/dashboard"
	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
	"github.com/aescanero/dago-prompt-dashboard/internal/publish"
	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	"github.com/aescanero/dago-prompt-dashboard/internal/view"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures the HTTP server
type Options struct {
	Port           int
	MaxUploadBytes int64
	Filename       string
}

// Server serves the dashboard
type Server struct {
	opts     Options
	pipeline *dashboard.Pipeline
	pages    *view.Pages
	sink     publish.Sink
	logger   *zap.Logger
}

// New creates a new dashboard server. sink may be nil.
func New(opts Options, pipeline *dashboard.Pipeline, pages *view.Pages, sink publish.Sink, logger *zap.Logger) *Server {
	if sink == nil {
		sink = publish.Multi{}
	}
	return &Server{
		opts:     opts,
		pipeline: pipeline,
		pages:    pages,
		sink:     sink,
		logger:   logger,
	}
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /download", s.handleDownload)
	mux.HandleFunc("GET /api/templates", s.handleTemplates)
	mux.HandleFunc("POST /api/prompt", s.handlePrompt)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("starting dashboard server", zap.Int("port", s.opts.Port))
	return serve(ctx, srv, s.logger)
}

// serve runs srv until ctx is done
func serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("stopping server", zap.String("addr", srv.Addr))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}

// generate parses the upload and builds the view for one interaction
func (s *Server) generate(ctx context.Context, csv io.Reader, req dashboard.Request) (*dashboard.View, string, error) {
	requestID := uuid.NewString()

	tbl, err := table.ParseCSV(csv)
	if err != nil {
		s.logger.Info("rejected upload",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, requestID, err
	}

	v, err := s.pipeline.Build(ctx, tbl, req)
	if err != nil {
		s.logger.Warn("failed to build view",
			zap.String("request_id", requestID),
			zap.String("template", req.Template),
			zap.Error(err),
		)
		return nil, requestID, err
	}

	s.logger.Info("prompt generated",
		zap.String("request_id", requestID),
		zap.String("template", v.Prompt.Template),
		zap.String("mode", string(v.Prompt.Mode)),
		zap.Int("rows", v.Rows),
		zap.Int("prompt_bytes", len(v.Prompt.Text)),
	)

	if err := s.sink.Publish(ctx, publish.NewEvent(requestID, v.Prompt)); err != nil {
		s.logger.Error("failed to publish prompt",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}

	return v, requestID, nil
}

// statusFor maps a generation error to an HTTP status
func statusFor(err error) int {
	var parseErr *table.ParseError
	var maxBytesErr *http.MaxBytesError
	var uploadErr *uploadError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &parseErr), errors.As(err, &uploadErr),
		errors.Is(err, prompt.ErrUnknownTemplate), errors.Is(err, errNoFile), errors.Is(err, errNoPrompt):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
