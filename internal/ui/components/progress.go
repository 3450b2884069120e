package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// ProgressBar shows how far a test has come, one segment per question:
// green for correct answers, red for wrong ones, grey for the rest.
type ProgressBar struct {
	Label   string
	Total   int
	Results []bool
	Width   int
}

// NewProgressBar creates a bar for total questions with the given results
// so far.
func NewProgressBar(label string, total int, results []bool, width int) ProgressBar {
	return ProgressBar{Label: label, Total: total, Results: results, Width: width}
}

// View renders the bar. When there are more questions than cells, each cell
// shows the question it lands on.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	cells := max(p.Width-lipgloss.Width(b.String()), 4)
	total := max(p.Total, 1)

	styles := [...]lipgloss.Style{
		lipgloss.NewStyle().Background(theme.Border),
		lipgloss.NewStyle().Background(theme.Error),
		lipgloss.NewStyle().Background(theme.Success),
	}

	// Runs of equal cells are rendered together to keep escape codes short.
	run, kind := 0, 0
	flush := func() {
		if run > 0 {
			b.WriteString(styles[kind].Render(strings.Repeat(" ", run)))
		}
	}
	for i := range cells {
		q := i * total / cells
		k := 0
		if q < len(p.Results) {
			k = 1
			if p.Results[q] {
				k = 2
			}
		}
		if run > 0 && k != kind {
			flush()
			run = 0
		}
		kind = k
		run++
	}
	flush()
	return b.String()
}
