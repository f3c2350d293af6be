package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"yaml-fixer/internal/common"
	"yaml-fixer/internal/fixer"
)

// Request is the JSON body accepted by the fix and validate endpoints.
// Unset fields fall back to the server defaults. A non-JSON body is taken
// as the document itself, with overrides read from the query string.
type Request struct {
	Content             string   `json:"content"`
	Aggressive          *bool    `json:"aggressive,omitempty"`
	ConfidenceThreshold *float64 `json:"confidenceThreshold,omitempty"`
	IndentUnit          *int     `json:"indentUnit,omitempty"`
	MaxIterations       *int     `json:"maxIterations,omitempty"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

var errTimeout = errors.New("request timed out")

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   serviceName,
		Version:   s.version,
	})
}

func (s *Server) fix(c *gin.Context) {
	req, opts, ok := s.bind(c)
	if !ok {
		return
	}

	res, err := withTimeout(c.Request.Context(), s.timeout(), func() *fixer.Result {
		return s.fixer.Fix(req.Content, opts)
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	s.metrics.recordFix(res)
	c.JSON(http.StatusOK, res)
}

func (s *Server) validate(c *gin.Context) {
	req, opts, ok := s.bind(c)
	if !ok {
		return
	}

	res, err := withTimeout(c.Request.Context(), s.timeout(), func() *fixer.ValidationResult {
		return s.fixer.Validate(req.Content, opts)
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

// bind decodes the request and merges its overrides into the defaults. It
// writes the error response itself and reports whether to continue.
func (s *Server) bind(c *gin.Context) (Request, fixer.Options, bool) {
	var req Request

	if c.ContentType() == gin.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.reject(c, err)
			return req, fixer.Options{}, false
		}
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			s.reject(c, err)
			return req, fixer.Options{}, false
		}

		req.Content = string(body)

		if err := queryOverrides(c, &req); err != nil {
			s.reject(c, err)
			return req, fixer.Options{}, false
		}
	}

	opts, err := s.merge(req)
	if err != nil {
		s.reject(c, err)
		return req, fixer.Options{}, false
	}

	return req, opts, true
}

func (s *Server) reject(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit)})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) merge(req Request) (fixer.Options, error) {
	opts := s.defaults

	if req.Aggressive != nil {
		opts.Aggressive = *req.Aggressive
	}

	if req.ConfidenceThreshold != nil {
		t := *req.ConfidenceThreshold
		if !common.IsInRange(0, t, 1) {
			return opts, fmt.Errorf("confidenceThreshold must be within [0, 1], got %g", t)
		}

		opts.ConfidenceThreshold = t
	}

	if req.IndentUnit != nil {
		if *req.IndentUnit < 1 {
			return opts, fmt.Errorf("indentUnit must be at least 1, got %d", *req.IndentUnit)
		}

		opts.IndentUnit = *req.IndentUnit
	}

	if req.MaxIterations != nil {
		if *req.MaxIterations < 1 {
			return opts, fmt.Errorf("maxIterations must be at least 1, got %d", *req.MaxIterations)
		}

		opts.MaxIterations = *req.MaxIterations
	}

	return opts, nil
}

func queryOverrides(c *gin.Context, req *Request) error {
	if v, ok := c.GetQuery("aggressive"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid aggressive: %w", err)
		}

		req.Aggressive = &b
	}

	if v, ok := c.GetQuery("threshold"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid threshold: %w", err)
		}

		req.ConfidenceThreshold = &f
	}

	if v, ok := c.GetQuery("indent"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid indent: %w", err)
		}

		req.IndentUnit = &n
	}

	return nil
}

// withTimeout runs fn, giving up after d. A zero d waits indefinitely.
func withTimeout[T any](ctx context.Context, d time.Duration, fn func() T) (T, error) {
	if d <= 0 {
		return fn(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan T, 1)

	go func() {
		done <- fn()
	}()

	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, errTimeout
	}
}
