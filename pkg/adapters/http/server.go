package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luthierlabs/fretbridge/internal/logging"
	"github.com/luthierlabs/fretbridge/pkg/bridge"
)

// maxMessageBytes bounds inbound envelope size; template payloads are the
// largest legitimate message and stay well under this.
const maxMessageBytes = 1 << 20

// Server routes UI traffic to one bridge.
type Server struct {
	bridge  *bridge.Bridge
	streams *StreamManager
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts a scrape handler on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a Server and attaches its stream manager to the
// bridge as the UI channel.
func NewServer(b *bridge.Bridge, opts ...Option) *Server {
	s := &Server{
		bridge: b,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	b.Attach(s.streams)
	return s
}

// Streams exposes the SSE fan-out, mainly for tests.
func (s *Server) Streams() *StreamManager { return s.streams }

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/message", s.postMessage)
	r.Get("/api/stream", s.getStream)
	r.Get("/healthz", s.getHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// postMessage accepts one inbound action envelope. Dispatch is
// fire-and-forget: the bridge never answers on the request, responses
// arrive on the stream.
func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessageBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		http.Error(w, "invalid message envelope", http.StatusBadRequest)
		s.logger.Warn("bad message envelope", "err", err)
		return
	}
	if env.Action == "" {
		http.Error(w, "action is required", http.StatusBadRequest)
		return
	}

	s.bridge.HandleMessage(r.Context(), env.Action, env.Payload)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) getStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		s.logger.Error("stream rejected, response writer cannot flush")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.streams.Subscribe()
	defer cancel()

	s.logger.Info("sse client connected", "clients", s.streams.Count())
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("sse client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
