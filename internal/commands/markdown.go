package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/hay-kot/artisan/internal/core/craft"
)

const markdownWrap = 80

// itemMarkdown renders an item and its materials as a markdown table.
func itemMarkdown(item craft.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s", item.Name)
	if item.Job != "" {
		fmt.Fprintf(&b, " (%s)", item.Job)
	}
	b.WriteString("\n\n| Material | Count |\n|---|---:|\n")
	for _, m := range item.Materials {
		fmt.Fprintf(&b, "| %s | %d |\n", m.Name, m.Count)
	}
	return b.String()
}

// renderMarkdown styles md for the terminal. Output that is not a terminal
// gets the raw markdown.
func renderMarkdown(md string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return md
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return md
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
