package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// If no renderer can be built, markdown is returned unchanged.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// SnapshotMarkdown describes one snapshot of a trace of total snapshots.
func SnapshotMarkdown(snap domain.Snapshot[any], total int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### Step %d of %d · `%s`\n\n", snap.Step+1, total, snap.Tag)
	sb.WriteString(snap.Description)
	sb.WriteString("\n")
	return sb.String()
}
