package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/jovemprogramador/chatbot-go/internal/constants"
	"github.com/jovemprogramador/chatbot-go/internal/domain"
	"github.com/jovemprogramador/chatbot-go/internal/metrics"
)

// Answerer produces the reply for a raw question.
type Answerer interface {
	Answer(ctx context.Context, raw string) domain.Answer
}

// Config contains server configuration
type Config struct {
	Addr        string
	CORSEnabled bool
}

// Server exposes the assistant over HTTP.
type Server struct {
	answerer    Answerer
	metrics     *metrics.Metrics
	logger      *zap.Logger
	addr        string
	server      *http.Server
	mux         *http.ServeMux
	corsEnabled bool
}

func New(cfg Config, answerer Answerer, m *metrics.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		answerer:    answerer,
		metrics:     m,
		logger:      logger,
		addr:        cfg.Addr,
		mux:         http.NewServeMux(),
		corsEnabled: cfg.CORSEnabled,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  constants.ServerConfig.ReadTimeout,
		WriteTimeout: constants.ServerConfig.WriteTimeout,
		IdleTimeout:  constants.ServerConfig.IdleTimeout,
	}

	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /perguntar", s.handleAsk)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", s.metrics.Handler())
}

// Handler is the full middleware chain, usable without a listener.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.middleware(s.mux), "chatbot",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.addr))
	if err := s.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")
	return s.server.Shutdown(ctx)
}

// handleAsk answers with 200 for every outcome. An unreadable body counts as
// an empty question.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req domain.AskRequest
	body := http.MaxBytesReader(w, r.Body, constants.ServerConfig.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !stderrors.Is(err, io.EOF) {
		s.logger.Warn("Invalid request body, treating as empty question",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err),
		)
		req = domain.AskRequest{}
	}

	answer := s.answerer.Answer(r.Context(), req.Pergunta)
	respondJSON(w, http.StatusOK, domain.AskResponse{Resposta: answer.Text})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"time":   time.Now(),
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
