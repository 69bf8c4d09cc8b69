package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/menubot/pkg/domain"
)

// JSONHandler implements IOHandler over JSON Lines.
//
// Input lines are either {"text": "..."}, a JSON string, or plain text.
// Every reply is written as one JSON object.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder

	mu sync.Mutex
}

// Reply is the wire form of an outbound message.
type Reply struct {
	Type      string   `json:"type"`
	SessionID string   `json:"session_id,omitempty"`
	Text      string   `json:"text"`
	Choices   []string `json:"choices,omitempty"`
}

type inputLine struct {
	Text *string `json:"text"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

// Send writes one "message" line.
func (h *JSONHandler) Send(ctx context.Context, sessionID string, msg domain.Message) error {
	return h.encode(Reply{Type: "message", SessionID: sessionID, Text: msg.Text, Choices: msg.Choices})
}

// SystemOutput writes one "system" line.
func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.encode(Reply{Type: "system", Text: msg})
}

func (h *JSONHandler) encode(v Reply) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(v)
}

// Input reads the next non-blank line. Unlike the text handler, invalid
// input is an error: a headless caller has no one to retry.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := h.Reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return SanitizeInput(decodeInputLine(line))
	}
}

func decodeInputLine(line string) string {
	switch line[0] {
	case '{':
		var obj inputLine
		if err := json.Unmarshal([]byte(line), &obj); err == nil && obj.Text != nil {
			return *obj.Text
		}
	case '"':
		var s string
		if err := json.Unmarshal([]byte(line), &s); err == nil {
			return s
		}
	}
	return line
}
