package components

import (
	"testing"

	"charm.land/lipgloss/v2"
)

func TestProgressBarWidth(t *testing.T) {
	for _, tt := range []struct {
		total   int
		results []bool
		width   int
	}{
		{30, nil, 60},
		{30, []bool{true, false, true}, 60},
		{100, []bool{true, true}, 40},
		{3, []bool{true, true, false}, 20},
	} {
		bar := NewProgressBar("3/30", tt.total, tt.results, tt.width)
		if got := lipgloss.Width(bar.View()); got != tt.width {
			t.Errorf("total %d width %d: rendered width %d", tt.total, tt.width, got)
		}
	}
}

func TestProgressBarMinimumCells(t *testing.T) {
	bar := NewProgressBar("a very long label", 10, nil, 5)
	want := lipgloss.Width("a very long label") + 2 + 4
	if got := lipgloss.Width(bar.View()); got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
}
