package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerRows = []string{
	` _              _`,
	`| |__  __ _ _ _ | |_____  __ _ _`,
	`| '_ \/ _' | ' \| / / _ \/ _| '_|`,
	`|_.__/\__,_|_||_|_\_\___/\__|_|`,
}

// bannerColors runs from indigo to rose, one stop per row.
var bannerColors = []string{"#818cf8", "#a78bfa", "#e879f9", "#fb7185"}

// PrintBanner writes the bankocr banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).Profile

	fmt.Fprintln(w)
	for i, row := range bannerRows {
		fmt.Fprintln(w, p.String(row).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, p.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
