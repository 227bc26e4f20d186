package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the pathfinder banner to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"             _   _      __ _           _", "#34d399"},
		{"  _ __  __ _| |_| |__  / _(_)_ _  __| |___ _ _", "#2dd4bf"},
		{" | '_ \\/ _` |  _| '_ \\|  _| | ' \\/ _` / -_) '_|", "#22d3ee"},
		{" | .__/\\__,_|\\__|_| |_|_| |_|_||_\\__,_\\___|_|", "#38bdf8"},
		{" |_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
