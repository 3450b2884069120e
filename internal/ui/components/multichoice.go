package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// OptionPicker is the A-D answer selector. Cursor is the highlighted row;
// Chosen is the option picked so far, empty until the learner picks one.
type OptionPicker struct {
	Options [4]string
	Cursor  int
	Chosen  bank.Option

	// Revealed switches to feedback rendering: the correct option in green,
	// a wrong pick in red.
	Revealed bool
	Correct  bank.Option
}

// NewOptionPicker creates a picker for q with nothing chosen.
func NewOptionPicker(q bank.Question) OptionPicker {
	return OptionPicker{Options: q.Options}
}

// Move shifts the cursor by delta, clamped to the option range.
func (p *OptionPicker) Move(delta int) {
	p.Cursor = min(max(p.Cursor+delta, 0), len(p.Options)-1)
}

// Pick chooses o and moves the cursor to it.
func (p *OptionPicker) Pick(o bank.Option) {
	if i := o.Index(); i >= 0 {
		p.Chosen = o
		p.Cursor = i
	}
}

// PickCursor chooses the highlighted option.
func (p *OptionPicker) PickCursor() {
	p.Chosen = bank.Options[p.Cursor]
}

// Reveal switches to feedback rendering.
func (p *OptionPicker) Reveal(chosen, correct bank.Option) {
	p.Revealed = true
	p.Chosen = chosen
	p.Correct = correct
}

// View renders the options, one per line.
func (p OptionPicker) View(width int) string {
	var b strings.Builder
	for i, text := range p.Options {
		opt := bank.Options[i]
		mark := "○"
		if opt == p.Chosen {
			mark = "●"
		}
		prefix := "  "
		if i == p.Cursor && !p.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, opt, text)

		style := theme.Unselected
		switch {
		case p.Revealed && opt == p.Correct:
			style = theme.Correct
		case p.Revealed && opt == p.Chosen:
			style = theme.Incorrect
		case p.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == p.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
