package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/menubot"
	menuhttp "github.com/aretw0/menubot/pkg/adapters/http"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postTurn(t *testing.T, h http.Handler, body string, token string) (*httptest.ResponseRecorder, menuhttp.TurnResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/turns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp menuhttp.TurnResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestPostTurn_OrderConversation(t *testing.T) {
	h := menuhttp.NewHandler(menubot.New())

	w, resp := postTurn(t, h, `{"session_id":"s1","text":"hi"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Replies, 2)
	assert.Equal(t, "Ready to take your order...", resp.Replies[0].Text)
	assert.Equal(t, "What would you like for dinner?", resp.Replies[1].Text)
	assert.Len(t, resp.Replies[1].Choices, 7)
	assert.Equal(t, domain.StatusAwaitingChoice, resp.State.Status)

	_, resp = postTurn(t, h, `{"session_id":"s1","text":"1"}`, "")
	require.Len(t, resp.Replies, 2)
	assert.Equal(t, "Added Potato Salad to your cart.\nCurrent total: $5.99", resp.Replies[0].Text)
	require.NotNil(t, resp.Diff)
	require.NotNil(t, resp.Diff.Cart)
	assert.Equal(t, []string{"Potato Salad"}, resp.Diff.Cart.Appended)

	_, resp = postTurn(t, h, `{"session_id":"s1","text":"process order"}`, "")
	require.Len(t, resp.Replies, 2)
	assert.Equal(t, "Your order has been processed.", resp.Replies[0].Text)
	assert.Equal(t, "Your total came to $5.99", resp.Replies[1].Text)
	assert.Equal(t, domain.StatusCompleted, resp.State.Status)
}

func TestPostTurn_Validation(t *testing.T) {
	h := menuhttp.NewHandler(menubot.New())

	w, _ := postTurn(t, h, `not json`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = postTurn(t, h, `{"text":"hi"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "session_id is required")

	big := strings.Repeat("a", 5000)
	w, _ = postTurn(t, h, `{"session_id":"s1","text":"`+big+`"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessions_GetAndDelete(t *testing.T) {
	h := menuhttp.NewHandler(menubot.New())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/s1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	postTurn(t, h, `{"session_id":"s1","text":"hi"}`, "")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/s1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var st domain.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, "s1", st.SessionID)
	assert.Equal(t, "order", st.Flow)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/s1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/s1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMenu(t *testing.T) {
	h := menuhttp.NewHandler(menubot.New())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/menu", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp menuhttp.MenuResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp.Locale)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "5.99", resp.Items[0].Price.StringFixed(2))
	assert.Equal(t, "Process order", resp.Commands.Checkout.Label)
}

func TestHealthInfoAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "menubot_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	h := menuhttp.NewHandler(menubot.New(), menuhttp.WithMetrics(reg), menuhttp.WithVersion("1.2.3"))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.JSONEq(t, `{"app":"menubot-http","version":"1.2.3","locale":"en"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "menubot_test_total 1")
}

func TestMetrics_NotMountedByDefault(t *testing.T) {
	h := menuhttp.NewHandler(menubot.New())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJWT(t *testing.T) {
	secret := []byte("test-secret")
	h := menuhttp.NewHandler(menubot.New(), menuhttp.WithJWTSecret(secret))

	w, _ := postTurn(t, h, `{"session_id":"s1","text":"hi"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = postTurn(t, h, `{"text":"hi"}`, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := menuhttp.IssueToken(secret, "alice")
	require.NoError(t, err)

	w, resp := postTurn(t, h, `{"text":"hi"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", resp.SessionID)

	w, _ = postTurn(t, h, `{"session_id":"bob","text":"hi"}`, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	other, err := menuhttp.IssueToken([]byte("other-secret"), "alice")
	require.NoError(t, err)
	w, _ = postTurn(t, h, `{"text":"hi"}`, other)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Public routes stay open.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/menu", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	h := menuhttp.NewHandler(menubot.New(), menuhttp.WithAllowedOrigins("https://example.com"))

	req := httptest.NewRequest(http.MethodOptions, "/turns", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_StreamsDiffs(t *testing.T) {
	srv := httptest.NewServer(menuhttp.NewHandler(menubot.New()))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/s1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewReader(resp.Body)
	readData := func() string {
		for {
			line, err := lines.ReadString('\n')
			require.NoError(t, err)
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				return strings.TrimSpace(data)
			}
		}
	}
	require.Equal(t, "connected", readData())

	turn, err := http.Post(srv.URL+"/turns", "application/json", bytes.NewBufferString(`{"session_id":"s1","text":"hi"}`))
	require.NoError(t, err)
	turn.Body.Close()

	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(readData()), &diff))
	assert.Equal(t, "s1", diff.SessionID)
	require.NotNil(t, diff.Flow)
	assert.Equal(t, "order", *diff.Flow)
}

func TestStreamManager_UnsubscribeTwice(t *testing.T) {
	sm := menuhttp.NewStreamManager()
	ch, cancel := sm.Subscribe("s1")
	sm.Broadcast("s1", "x")
	assert.Equal(t, "x", <-ch)

	cancel()
	assert.NotPanics(t, cancel)
	sm.Broadcast("s1", "ignored")
}
