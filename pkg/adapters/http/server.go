package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/menubot/internal/logging"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/menu"
	"github.com/aretw0/menubot/pkg/ports"
	"github.com/aretw0/menubot/pkg/runner"
	"github.com/aretw0/menubot/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Bot is the part of the menubot Bot the HTTP surface needs.
type Bot interface {
	Process(ctx context.Context, turn domain.Turn, sender ports.Sender) (*domain.State, *domain.StateDiff, error)
	Menu() *menu.Menu
	Sessions() *session.Manager
}

// Server exposes a Bot over HTTP.
type Server struct {
	Bot     Bot
	Streams *StreamManager

	version   string
	jwtSecret []byte
	gatherer  prometheus.Gatherer
	origins   []string
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithJWTSecret requires an HS256 bearer token on session routes.
// The token's subject is the session id.
func WithJWTSecret(secret []byte) Option {
	return func(s *Server) {
		s.jwtSecret = secret
	}
}

// WithMetrics serves g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithAllowedOrigins restricts CORS origins. The default allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithVersion is reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a Server for bot.
func NewServer(bot Bot, opts ...Option) *Server {
	s := &Server{
		Bot:     bot,
		Streams: NewStreamManager(),
		version: "dev",
		origins: []string{"*"},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates a new HTTP handler for the bot.
func NewHandler(bot Bot, opts ...Option) http.Handler {
	return NewServer(bot, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/menu", s.GetMenu)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/turns", s.PostTurn)
		r.Get("/sessions/{id}", s.GetSession)
		r.Delete("/sessions/{id}", s.DeleteSession)
		r.Get("/sessions/{id}/events", s.SubscribeEvents)
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)
}

// TurnRequest is the body of POST /turns.
type TurnRequest struct {
	SessionID string              `json:"session_id"`
	Kind      domain.ActivityKind `json:"kind,omitempty"`
	Text      string              `json:"text"`
}

// TurnResponse carries the replies produced by one turn.
type TurnResponse struct {
	SessionID string            `json:"session_id"`
	Replies   []domain.Message  `json:"replies"`
	State     *domain.State     `json:"state"`
	Diff      *domain.StateDiff `json:"diff,omitempty"`
}

// PostTurn handles the POST /turns request.
func (s *Server) PostTurn(w http.ResponseWriter, r *http.Request) {
	var body TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("PostTurn: invalid request body", "err", err)
		return
	}

	sessionID, ok := s.resolveSession(w, r, body.SessionID)
	if !ok {
		return
	}
	if body.Kind == "" {
		body.Kind = domain.ActivityMessage
	}

	if body.Text != "" {
		clean, err := runner.SanitizeInput(body.Text)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid input: %v", err))
			s.logger.Warn("PostTurn: input rejected", "err", err, "size", len(body.Text))
			return
		}
		body.Text = clean
	}

	replies := &collector{}
	turn := domain.Turn{Kind: body.Kind, Text: body.Text, SessionID: sessionID}
	state, diff, err := s.Bot.Process(r.Context(), turn, replies)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "turn failed")
		s.logger.Error("PostTurn: turn failed", "session_id", sessionID, "err", err)
		return
	}

	if diff != nil {
		if payload, err := json.Marshal(diff); err == nil {
			s.Streams.Broadcast(sessionID, string(payload))
		}
	}

	writeJSON(w, http.StatusOK, TurnResponse{
		SessionID: sessionID,
		Replies:   replies.messages(),
		State:     state,
		Diff:      diff,
	})
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolveSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	state, err := s.Bot.Sessions().Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "load failed")
		s.logger.Error("GetSession: load failed", "session_id", id, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolveSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := s.Bot.Sessions().Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete failed")
		s.logger.Error("DeleteSession: delete failed", "session_id", id, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MenuResponse is the public view of the menu.
type MenuResponse struct {
	Locale   string        `json:"locale"`
	Items    []menu.Item   `json:"items"`
	Commands menu.Commands `json:"commands"`
	Choices  []string      `json:"choices"`
}

// GetMenu handles the GET /menu request.
func (s *Server) GetMenu(w http.ResponseWriter, r *http.Request) {
	m := s.Bot.Menu()
	writeJSON(w, http.StatusOK, MenuResponse{
		Locale:   m.Locale(),
		Items:    m.Items(),
		Commands: m.Commands(),
		Choices:  m.Choices(),
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "menubot-http",
		"version": s.version,
		"locale":  s.Bot.Menu().Locale(),
	})
}

// collector is a Sender that buffers replies for the response body.
type collector struct {
	mu      sync.Mutex
	replies []domain.Message
}

func (c *collector) Send(_ context.Context, _ string, msg domain.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, msg)
	return nil
}

func (c *collector) messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replies == nil {
		return []domain.Message{}
	}
	return c.replies
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
