// Package api exposes the HTTP surface of the plantar service: date
// and recording lookups, rendered heatmap and legend rasters, peak
// reports, trend plots and playback control.
package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/neurosense/plantar.report/internal/heatmap"
	"github.com/neurosense/plantar.report/internal/httputil"
	"github.com/neurosense/plantar.report/internal/monitoring"
	"github.com/neurosense/plantar.report/internal/playback"
	"github.com/neurosense/plantar.report/internal/sampledb"
	"github.com/neurosense/plantar.report/internal/serialmux"
	"github.com/neurosense/plantar.report/internal/version"
)

// ANSI escape codes for request log coloring
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Server wires the sample store, the renderer and the optional live
// serial mux behind one ServeMux. One playback player is held at a
// time; loading a recording replaces it.
type Server struct {
	db       *sampledb.DB
	renderer *heatmap.Renderer
	m        serialmux.Interface // nil when no device is attached
	mux      *http.ServeMux
	server   *http.Server

	mu        sync.Mutex
	player    *playback.Player
	playerRec string
}

// NewServer creates a server listening on addr. mux may be nil when
// running without a live insole; the command endpoint then reports
// service unavailable.
func NewServer(addr string, db *sampledb.DB, renderer *heatmap.Renderer, m serialmux.Interface) *Server {
	s := &Server{db: db, renderer: renderer, m: m}
	s.mux = s.routes()
	s.server = &http.Server{
		Addr:    addr,
		Handler: LoggingMiddleware(s.mux),
	}
	return s
}

// ServeMux returns the route table. Exposed so tests can drive
// handlers through httptest without a listener.
func (s *Server) ServeMux() *http.ServeMux { return s.mux }

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/dates", s.listDates)
	mux.HandleFunc("/api/recordings", s.listRecordings)
	mux.HandleFunc("/api/heatmap", s.showHeatmap)
	mux.HandleFunc("/api/legend", s.showLegend)
	mux.HandleFunc("/api/peak", s.showPeak)
	mux.HandleFunc("/api/trend", s.showTrend)
	mux.HandleFunc("/api/chart", s.showSensorChart)
	mux.HandleFunc("/api/command", s.sendCommandHandler)
	mux.HandleFunc("/api/playback/load", s.playbackLoad)
	mux.HandleFunc("/api/playback/play", s.playbackPlay)
	mux.HandleFunc("/api/playback/pause", s.playbackPause)
	mux.HandleFunc("/api/playback/stop", s.playbackStop)
	mux.HandleFunc("/api/playback/next", s.playbackStep(1))
	mux.HandleFunc("/api/playback/prev", s.playbackStep(-1))
	mux.HandleFunc("/api/playback/status", s.playbackStatus)
	return mux
}

// AttachAdminRoutes mounts the operator /debug endpoints onto the
// server's route table.
func (s *Server) AttachAdminRoutes() error {
	return s.db.AttachAdminRoutes(s.mux)
}

// Start begins the HTTP server and blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		monitoring.Logf("starting HTTP server on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			monitoring.Logf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	monitoring.Logf("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := s.server.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) sendCommandHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.m == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "no serial device attached")
		return
	}

	command := r.FormValue("command")
	if command == "" {
		httputil.BadRequest(w, "missing 'command' parameter")
		return
	}
	if err := s.m.SendCommand(command); err != nil {
		httputil.InternalServerError(w, "failed to send command")
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"status": "sent"})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
