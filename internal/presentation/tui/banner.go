package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the calinea ASCII art banner in a gold-to-red gradient.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text, color string
	}{
		{"            _ _                 ", "#ffaa00"},
		{"   ___ __ _| (_)_ __   ___  __ _ ", "#ffc04d"},
		{"  / __/ _` | | | '_ \\ / _ \\/ _` |", "#ff8f4d"},
		{" | (_| (_| | | | | | |  __/ (_| |", "#ff6f5a"},
		{"  \\___\\__,_|_|_|_| |_|\\___|\\__,_|", "#ff5555"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
