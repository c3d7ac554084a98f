package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the divination table banner. Art and greeting follow
// the table's traditional welcome.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Warm gradient, ink to cinnabar.
	lines := []struct {
		text  string
		color string
	}{
		{"      _ ___ ___ _    _           ", "#fbbf24"},
		{"   __| |_ _/ __| |_ (_)_ _  __ _ ", "#f59e0b"},
		{"  / _| || | (__| ' \\| | ' \\/ _` |", "#f97316"},
		{"  \\__|_|___\\___|_||_|_|_||_\\__, |", "#ef4444"},
		{"                           |___/ ", "#dc2626"},
	}

	fmt.Fprintln(w)
	for _, line := range lines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "cliching %s — an I Ching divination table for the command line.\n", version)
	fmt.Fprintln(w, "Type 'h' for help, 'q' to leave the table.")
}
