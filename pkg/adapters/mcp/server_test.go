package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/menubot"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer(menubot.New(), "test")
}

func TestOrderTurn(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	resp, err := s.handleOrderTurn(ctx, mcp.CallToolRequest{}, TurnArgs{SessionID: "agent-1", Text: "hi"})
	require.NoError(t, err)
	require.Len(t, resp.Replies, 2)
	assert.Equal(t, "What would you like for dinner?", resp.Replies[1].Text)

	resp, err = s.handleOrderTurn(ctx, mcp.CallToolRequest{}, TurnArgs{SessionID: "agent-1", Text: "clam chowder - $4.50"})
	require.NoError(t, err)
	assert.Equal(t, "Added Clam Chowder to your cart.\nCurrent total: $4.50", resp.Replies[0].Text)
	assert.Equal(t, []string{"Clam Chowder"}, resp.State.Cart.Items)

	resp, err = s.handleOrderTurn(ctx, mcp.CallToolRequest{}, TurnArgs{SessionID: "agent-1", Text: "cancel"})
	require.NoError(t, err)
	require.Len(t, resp.Replies, 2)
	assert.Equal(t, "Your order was cancelled.", resp.Replies[1].Text)
	assert.Equal(t, domain.StatusCompleted, resp.State.Status)
}

func TestOrderTurn_Rejects(t *testing.T) {
	s := newTestServer()

	_, err := s.handleOrderTurn(context.Background(), mcp.CallToolRequest{}, TurnArgs{Text: "hi"})
	assert.ErrorIs(t, err, domain.ErrMissingSession)

	_, err = s.handleOrderTurn(context.Background(), mcp.CallToolRequest{}, TurnArgs{SessionID: "a", Text: strings.Repeat("x", 5000)})
	assert.Error(t, err)
}

func TestSessionTools(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	res, err := s.handleGetSession(ctx, mcp.CallToolRequest{}, SessionArgs{SessionID: "agent-1"})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	_, err = s.handleOrderTurn(ctx, mcp.CallToolRequest{}, TurnArgs{SessionID: "agent-1", Text: "hi"})
	require.NoError(t, err)

	res, err = s.handleGetSession(ctx, mcp.CallToolRequest{}, SessionArgs{SessionID: "agent-1"})
	require.NoError(t, err)
	require.False(t, res.IsError)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var st domain.State
	require.NoError(t, json.Unmarshal([]byte(text.Text), &st))
	assert.Equal(t, "order", st.Flow)

	_, err = s.handleResetSession(ctx, mcp.CallToolRequest{}, SessionArgs{SessionID: "agent-1"})
	require.NoError(t, err)
	_, err = s.bot.Sessions().Load(ctx, "agent-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestReadMenu(t *testing.T) {
	s := newTestServer()

	contents, err := s.readMenu(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	res, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, MenuURI, res.URI)

	var view menuView
	require.NoError(t, json.Unmarshal([]byte(res.Text), &view))
	assert.Equal(t, "en", view.Locale)
	assert.Len(t, view.Items, 3)
	assert.Len(t, view.Choices, 7)
}
