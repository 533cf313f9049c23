// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"seqopt/internal/jsonutil"
	"seqopt/internal/metrics"
	"seqopt/internal/report"
	"seqopt/pkg/api"
)

// OptimizePath is the design endpoint.
const OptimizePath = "/api/dna-optimization"

const requestIDHeader = "X-Request-ID"

// Server exposes the pipeline over HTTP. Every request gets its own
// builder output and solver.
type Server struct {
	router   *gin.Engine
	reporter *report.Reporter
	log      *zap.Logger
	maxLen   int
}

// New wires the routes. m may be nil, which disables /metrics.
func New(r *report.Reporter, m *metrics.Recorder, log *zap.Logger, maxSequenceLength int) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{reporter: r, log: log, maxLen: maxSequenceLength}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.POST(OptimizePath, s.optimize)
	router.GET("/healthz", s.health)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
	s.router = router
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func (s *Server) optimize(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.HTTPErrorV1{Error: "Invalid request body", Details: err.Error()})
		return
	}
	req, err := jsonutil.DecodeRequest(body)
	if err != nil && !errors.Is(err, jsonutil.ErrEmptyInput) {
		c.JSON(http.StatusBadRequest, api.HTTPErrorV1{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if strings.TrimSpace(req.Sequence) == "" {
		c.JSON(http.StatusBadRequest, api.HTTPErrorV1{Error: "Sequence is required"})
		return
	}
	if s.maxLen > 0 && len(req.Sequence) > s.maxLen {
		c.JSON(http.StatusBadRequest, api.HTTPErrorV1{
			Error:   "Sequence too long",
			Details: fmt.Sprintf("Sequences longer than %d bp are not supported for optimization", s.maxLen),
		})
		return
	}

	res := s.reporter.Run(c.Request.Context(), report.FromV1(req))
	if !res.Success {
		c.JSON(http.StatusInternalServerError, api.HTTPErrorV1{
			Error:     "DNA optimization failed",
			Details:   res.Error,
			Traceback: res.Traceback,
		})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) health(c *gin.Context) {
	cp := s.reporter.Capability()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "solver_available": cp.Available, "reason": cp.Reason})
}
