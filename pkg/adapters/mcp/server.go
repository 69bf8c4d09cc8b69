package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/menubot/internal/logging"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/menu"
	"github.com/aretw0/menubot/pkg/ports"
	"github.com/aretw0/menubot/pkg/runner"
	"github.com/aretw0/menubot/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
)

// MenuURI is the resource exposing the menu definition.
const MenuURI = "menubot://menu"

// Bot is the part of the menubot Bot the MCP server needs.
type Bot interface {
	Process(ctx context.Context, turn domain.Turn, sender ports.Sender) (*domain.State, *domain.StateDiff, error)
	Menu() *menu.Menu
	Sessions() *session.Manager
}

// TurnArgs are the arguments of the order_turn tool.
type TurnArgs struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// SessionArgs identify a session for get_session and reset_session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// TurnResponse is the structured result of order_turn.
type TurnResponse struct {
	SessionID string           `json:"session_id" jsonschema_description:"The conversation the turn belongs to"`
	Replies   []domain.Message `json:"replies" jsonschema_description:"Messages the bot sent, in order"`
	State     *domain.State    `json:"state,omitempty" jsonschema_description:"The session state after the turn"`
}

// Server exposes a Bot as an MCP server.
type Server struct {
	bot       Bot
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(bot Bot, version string, opts ...Option) *Server {
	s := &Server{
		bot:       bot,
		mcpServer: server.NewMCPServer("menubot-mcp", version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: cors.AllowAll().Handler(mux),
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	turnTool := mcp.NewTool("order_turn",
		mcp.WithDescription("Send one user message to the ordering bot and get its replies. Answer prompts with a choice label or its 1-based number."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation id; reuse it to continue an order")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The user's message")),
		mcp.WithOutputSchema[TurnResponse](),
	)
	s.mcpServer.AddTool(turnTool, mcp.NewStructuredToolHandler(s.handleOrderTurn))

	s.mcpServer.AddTool(mcp.NewTool("get_menu",
		mcp.WithDescription("Get the menu items, commands and choices."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := s.menuJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode menu: %v", err)), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get the saved state of a conversation, including its cart."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation id")),
	), mcp.NewTypedToolHandler(s.handleGetSession))

	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Forget a conversation so the next turn starts over."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation id")),
	), mcp.NewTypedToolHandler(s.handleResetSession))
}

func (s *Server) handleOrderTurn(ctx context.Context, _ mcp.CallToolRequest, args TurnArgs) (TurnResponse, error) {
	if args.SessionID == "" {
		return TurnResponse{}, domain.ErrMissingSession
	}
	clean, err := runner.SanitizeInput(args.Text)
	if err != nil {
		s.logger.Warn("MCP order_turn: input rejected", "err", err, "size", len(args.Text))
		return TurnResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	replies := &collector{}
	turn := domain.Turn{Kind: domain.ActivityMessage, Text: clean, SessionID: args.SessionID}
	state, _, err := s.bot.Process(ctx, turn, replies)
	if err != nil {
		return TurnResponse{}, fmt.Errorf("turn failed: %w", err)
	}
	return TurnResponse{SessionID: args.SessionID, Replies: replies.messages(), State: state}, nil
}

func (s *Server) handleGetSession(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (*mcp.CallToolResult, error) {
	state, err := s.bot.Sessions().Load(ctx, args.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("session %q not found", args.SessionID)), nil
		}
		return nil, err
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleResetSession(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (*mcp.CallToolResult, error) {
	if err := s.bot.Sessions().Delete(ctx, args.SessionID); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("session %q reset", args.SessionID)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MenuURI, "Menu",
		mcp.WithResourceDescription("Items, prices and commands the bot accepts"),
		mcp.WithMIMEType("application/json"),
	), s.readMenu)
}

func (s *Server) readMenu(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload, err := s.menuJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode menu: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MenuURI,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}

type menuView struct {
	Locale   string        `json:"locale"`
	Items    []menu.Item   `json:"items"`
	Commands menu.Commands `json:"commands"`
	Choices  []string      `json:"choices"`
}

func (s *Server) menuJSON() ([]byte, error) {
	m := s.bot.Menu()
	return json.Marshal(menuView{
		Locale:   m.Locale(),
		Items:    m.Items(),
		Commands: m.Commands(),
		Choices:  m.Choices(),
	})
}

// collector buffers the replies of one turn.
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
	return append([]domain.Message{}, c.replies...)
}
