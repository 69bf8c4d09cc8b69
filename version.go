package menubot

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the released version of menubot.
var Version = strings.TrimSpace(version)
