// Package server implements the HTTP mode: graphs are posted as JSON or DOT
// and come back as interactive pages or page data.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anthonybishopric/graphfocus/internal/metrics"
	"github.com/anthonybishopric/graphfocus/pkg/d3"
	"github.com/anthonybishopric/graphfocus/pkg/dot"
	"github.com/anthonybishopric/graphfocus/pkg/graph"
	"github.com/anthonybishopric/graphfocus/pkg/settings"
)

// DefaultMaxBody caps request bodies when Options.MaxBody is unset.
const DefaultMaxBody = 8 << 20

// RenderRequest is the JSON request body for POST /render. DOT, when set,
// replaces Nodes and Edges.
type RenderRequest struct {
	Nodes          []graph.Node       `json:"nodes"`
	Edges          []graph.Edge       `json:"edges"`
	DOT            string             `json:"dot,omitempty"`
	SelectedNodeID string             `json:"selectedNodeId,omitempty"`
	FilterOrphan   *bool              `json:"filterOrphan,omitempty"`
	GraphSettings  settings.Overrides `json:"graphSettings,omitempty"`
	Width          int                `json:"width,omitempty"`
	Height         int                `json:"height,omitempty"`
}

// Options configures a Server.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Registry

	// Defaults applied under every request.
	Settings     settings.Overrides
	FilterOrphan bool
	Width        int
	Height       int
	Title        string

	// MaxBody caps request bodies in bytes; larger bodies get 413.
	MaxBody int64
}

// Server serves the render API.
type Server struct {
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Registry
}

// New creates a Server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.NewRegistry()
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	return &Server{opts: opts, logger: logger, metrics: m}
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// POST /render - accepts a graph in the body, returns HTML (or JSON with ?format=json)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /{$}", handleIndex)

	return s.instrument(mux)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "json" {
		format = "html"
	}

	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.metrics.RecordRenderError(format)
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, err.Error(), status)
		return
	}

	page := d3.BuildPage(req.Nodes, req.Edges, d3.PageOptions{
		Selected:     req.SelectedNodeID,
		FilterOrphan: *req.FilterOrphan,
		Settings:     settings.Combine(s.opts.Settings, req.GraphSettings),
	})
	if err := settings.Validate(page.Settings); err != nil {
		s.metrics.RecordRenderError(format)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		output      []byte
		contentType string
	)
	if format == "json" {
		output, err = json.Marshal(page)
		contentType = "application/json"
	} else {
		output, err = d3.RenderHTML(page, d3.RenderOptions{
			Title:  firstNonEmpty(r.URL.Query().Get("title"), s.opts.Title),
			Width:  firstPositive(req.Width, s.opts.Width),
			Height: firstPositive(req.Height, s.opts.Height),
		})
		contentType = "text/html; charset=utf-8"
	}
	if err != nil {
		s.metrics.RecordRenderError(format)
		s.logger.Error("render failed", "format", format, "error", err)
		http.Error(w, "Failed to generate "+strings.ToUpper(format)+": "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordRender(format, len(req.Nodes), len(req.Edges), len(output))
	s.logger.Debug("rendered graph", "format", format, "nodes", len(req.Nodes), "edges", len(req.Edges), "bytes", len(output))

	w.Header().Set("Content-Type", contentType)
	w.Write(output)
}

// decodeRequest reads a JSON RenderRequest, or a plain DOT document. The
// query string overrides the body, and the body overrides server defaults.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*RenderRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	defer r.Body.Close()

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("request body is empty")
	}

	req := &RenderRequest{}
	isJSON := strings.Contains(r.Header.Get("Content-Type"), "application/json") || body[0] == '{'
	if isJSON {
		if err := json.Unmarshal(body, req); err != nil {
			return nil, fmt.Errorf("failed to parse JSON request: %w", err)
		}
	} else {
		req.DOT = string(body)
	}

	if req.DOT != "" {
		doc, err := dot.Parse("request", []byte(req.DOT))
		if err != nil {
			return nil, fmt.Errorf("failed to parse DOT: %w", err)
		}
		req.Nodes, req.Edges = doc.Nodes, doc.Edges
	}

	q := r.URL.Query()
	if v := q.Get("selected"); v != "" {
		req.SelectedNodeID = v
	}
	if req.FilterOrphan == nil {
		fo := s.opts.FilterOrphan
		req.FilterOrphan = &fo
	}
	if v, err := strconv.ParseBool(q.Get("filterOrphan")); err == nil {
		req.FilterOrphan = &v
	}
	return req, nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.HTTPRequestsInFlight.Inc()
		defer s.metrics.HTTPRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		d := time.Since(start)
		s.metrics.RecordHTTPRequest(r.Method, routeLabel(r.URL.Path), strconv.Itoa(rec.status), d)
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", d)
	})
}

// routeLabel keeps the path label cardinality bounded.
func routeLabel(path string) string {
	switch path {
	case "/", "/render", "/metrics", "/healthz":
		return path
	}
	return "other"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
