package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _ __ ___   ___ _ __  _   _| |__   ___ | |_ ", "#fbbf24"},
	{"| '_ ` _ \\ / _ \\ '_ \\| | | | '_ \\ / _ \\| __|", "#f59e0b"},
	{"| | | | | |  __/ | | | |_| | |_) | (_) | |_ ", "#f97316"},
	{"|_| |_| |_|\\___|_| |_|\\__,_|_.__/ \\___/ \\__|", "#ef4444"},
}

// PrintBanner writes the menubot banner and version to w.
// Colors degrade to whatever the terminal supports.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
