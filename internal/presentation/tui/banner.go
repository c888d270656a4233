package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Grunberg ASCII art banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// torch-lit gradient, amber to ember
	lines := []struct {
		text, color string
	}{
		{"   ____                  _                    ", "#fde68a"},
		{"  / ___|_ __ _   _ _ __ | |__   ___ _ __ __ _ ", "#fcd34d"},
		{" | |  _| '__| | | | '_ \\| '_ \\ / _ \\ '__/ _` |", "#fbbf24"},
		{" | |_| | |  | |_| | | | | |_) |  __/ | | (_| |", "#f59e0b"},
		{"  \\____|_|   \\__,_|_| |_|_.__/ \\___|_|  \\__, |", "#ea580c"},
		{"                                        |___/ ", "#c2410c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, termenv.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
