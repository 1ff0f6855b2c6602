package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/bankocr/internal/logging"
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes bounds uploaded scanner files (about 20x a normal 500-entry file).
const DefaultMaxBodyBytes = 1 << 20

// Engine defines the subset of the bankocr Engine the HTTP server needs.
type Engine interface {
	DecodeLine(line domain.DisplayLine) domain.Entry
	DecodeReader(ctx context.Context, source string, r io.Reader) (domain.Batch, error)
	Batch(ctx context.Context, id string) (domain.Batch, error)
	Batches(ctx context.Context) ([]string, error)
	DeleteBatch(ctx context.Context, id string) error
}

// DecodeRequest is the body of POST /v1/entries/decode.
type DecodeRequest struct {
	Rows []string `json:"rows"`
}

// BatchEvent is the payload broadcast to /v1/events subscribers.
type BatchEvent struct {
	ID      string                `json:"id"`
	Source  string                `json:"source,omitempty"`
	Entries int                   `json:"entries"`
	Counts  map[domain.Status]int `json:"counts"`
}

// Server serves the bankocr JSON API.
type Server struct {
	Engine  Engine
	Streams *StreamManager

	logger       *slog.Logger
	metrics      http.Handler
	maxBodyBytes int64
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h (typically promhttp) at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams shares a StreamManager, e.g. with a directory watcher.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMaxBodyBytes bounds request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:       engine,
		logger:       logging.NewNop(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.logger)
	}
	return server.Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/healthz", s.GetHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/entries/decode", s.DecodeEntry)
		r.Get("/batches", s.ListBatches)
		r.Post("/batches", s.DecodeBatch)
		r.Get("/batches/{id}", s.GetBatch)
		r.Delete("/batches/{id}", s.DeleteBatch)
		r.Get("/events", s.SubscribeEvents)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DecodeEntry handles the POST /v1/entries/decode request.
func (s *Server) DecodeEntry(w http.ResponseWriter, r *http.Request) {
	var body DecodeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("DecodeEntry: Invalid request body", "error", err)
		return
	}
	if len(body.Rows) != domain.GlyphRows {
		http.Error(w, fmt.Sprintf("Expected %d rows, got %d", domain.GlyphRows, len(body.Rows)), http.StatusBadRequest)
		return
	}

	line := domain.NewDisplayLine(body.Rows[0], body.Rows[1], body.Rows[2])
	s.writeJSON(w, http.StatusOK, s.Engine.DecodeLine(line))
}

// DecodeBatch handles the POST /v1/batches request. The body is a raw scanner file.
func (s *Server) DecodeBatch(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	batch, err := s.Engine.DecodeReader(r.Context(), source, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Scanner file too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, fmt.Sprintf("Decode error: %v", err), http.StatusInternalServerError)
		s.logger.Error("DecodeBatch failed", "error", err)
		return
	}

	if payload, err := json.Marshal(BatchEvent{
		ID:      batch.ID,
		Source:  batch.Source,
		Entries: len(batch.Entries),
		Counts:  batch.Counts(),
	}); err == nil {
		s.Streams.Broadcast(string(payload))
	}

	s.writeJSON(w, http.StatusCreated, batch)
}

// ListBatches handles the GET /v1/batches request.
func (s *Server) ListBatches(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Batches(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListBatches failed", "error", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// GetBatch handles the GET /v1/batches/{id} request.
func (s *Server) GetBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	batch, err := s.Engine.Batch(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrBatchNotFound) {
			http.Error(w, "Batch not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetBatch failed", "error", err, "batch_id", id)
		return
	}
	s.writeJSON(w, http.StatusOK, batch)
}

// DeleteBatch handles the DELETE /v1/batches/{id} request.
func (s *Server) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Engine.DeleteBatch(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.logger.Error("DeleteBatch failed", "error", err, "batch_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles the GET /v1/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: batch\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}
