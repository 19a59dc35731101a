package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"horse.fit/intel-pipeline/internal/globaltime"
	"horse.fit/intel-pipeline/internal/ingest"
	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/store"
)

type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	store  *store.Memory
	ingest *ingest.Service
	logger zerolog.Logger
	opts   Options
}

type ingestRequest struct {
	Record    record.Record `json:"record"`
	DateHint  string        `json:"date_hint"`
	SourceURL string        `json:"source_url"`
}

func NewServer(st *store.Memory, svc *ingest.Service, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8086
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Server{
		store:  st,
		ingest: svc,
		logger: logger,
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.store == nil || s.ingest == nil {
		return fmt.Errorf("server is not initialized")
	}

	e := s.buildEcho()

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("intel-pipeline server started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("intel-pipeline server stopped")
	return nil
}

func (s *Server) buildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	api := e.Group("/api/v1")
	api.GET("/health", s.handleHealth)
	api.POST("/records", s.handleIngestRecord)
	api.GET("/records", s.handleListRecords)
	api.GET("/records/:record_id", s.handleRecordDetail)

	return e
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	} else if err != nil {
		message = err.Error()
	}

	if status >= 500 {
		_ = internalError(c, "Internal server error")
		return
	}
	_ = fail(c, status, message, nil)
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": "intel-pipeline",
		"records": s.store.Len(),
		"time":    globaltime.UTC(),
	})
}

func (s *Server) handleIngestRecord(c echo.Context) error {
	var req ingestRequest
	if err := c.Bind(&req); err != nil {
		return failValidation(c, map[string]string{"body": "must be a valid JSON ingest request"})
	}
	if strings.TrimSpace(req.Record.Title) == "" {
		return failValidation(c, map[string]string{"record.title": "is required"})
	}

	result, err := s.ingest.IngestOne(c.Request().Context(), ingest.Request{
		Record:            req.Record,
		DateHint:          req.DateHint,
		SourceURLOverride: req.SourceURL,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("ingest record failed")
		return internalError(c, "Failed to ingest record")
	}

	if result.Blocked {
		return successWithStatus(c, http.StatusOK, result)
	}
	return successWithStatus(c, http.StatusCreated, result)
}

func (s *Server) handleListRecords(c echo.Context) error {
	priority := strings.TrimSpace(c.QueryParam("priority"))
	confidence := strings.TrimSpace(c.QueryParam("confidence"))
	theme := strings.TrimSpace(c.QueryParam("theme"))
	includeDuplicates := strings.EqualFold(strings.TrimSpace(c.QueryParam("include_duplicates")), "true")

	records := s.store.Snapshot()
	items := make([]*record.Record, 0, len(records))
	for _, rec := range records {
		if rec.IsDuplicate && !includeDuplicates {
			continue
		}
		if priority != "" && !strings.EqualFold(rec.Priority, priority) {
			continue
		}
		if confidence != "" && !strings.EqualFold(rec.Confidence, confidence) {
			continue
		}
		if theme != "" && !containsFold(rec.MacroThemes, theme) {
			continue
		}
		items = append(items, rec)
	}

	return success(c, map[string]any{
		"items": items,
		"total": len(items),
	})
}

func (s *Server) handleRecordDetail(c echo.Context) error {
	recordID := strings.TrimSpace(c.Param("record_id"))
	if recordID == "" {
		return failValidation(c, map[string]string{"record_id": "is required"})
	}

	rec, ok := s.store.Get(recordID)
	if !ok {
		return failNotFound(c, "Record not found")
	}
	return success(c, rec)
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
