package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.3.0")
	assert.Contains(t, buf.String(), "v0.3.0")
	assert.Contains(t, buf.String(), "|_| |_| |_|")
}

func TestRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("Added **Clam Chowder** to your cart.")
	require.NoError(t, err)
	assert.Contains(t, out, "Clam Chowder")
}
