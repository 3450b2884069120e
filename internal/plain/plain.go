// Package plain runs a test as a line-oriented dialogue, for terminals
// without full-screen support and for scripted input.
package plain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

// ErrInputClosed is returned when input ends before a setup is complete.
var ErrInputClosed = errors.New("input closed")

var (
	correctStyle = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	wrongStyle   = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(theme.Info)
	noticeStyle  = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// Runner reads answers from in and writes the dialogue to out.
type Runner struct {
	engine *session.Engine
	in     *bufio.Scanner
	out    io.Writer
}

// New creates a Runner.
func New(engine *session.Engine, in io.Reader, out io.Writer) *Runner {
	return &Runner{engine: engine, in: bufio.NewScanner(in), out: out}
}

func (r *Runner) printf(format string, args ...any) {
	lipgloss.Fprintf(r.out, format, args...)
}

func (r *Runner) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

// ChooseSetup fills in a missing subject or count by asking.
func (r *Runner) ChooseSetup(setup session.Setup) (session.Setup, error) {
	subjects := r.engine.Bank().Subjects()
	for setup.Subject == "" {
		r.printf("Subjects:\n")
		for i, s := range subjects {
			r.printf("  %d) %s\n", i+1, s)
		}
		r.printf("Choose a subject: ")
		line, ok := r.readLine()
		if !ok {
			return setup, ErrInputClosed
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(subjects) {
			setup.Subject = subjects[n-1]
		} else if r.engine.Bank().HasSubject(line) {
			setup.Subject = line
		}
	}

	for setup.Count == 0 {
		choices := make([]string, len(session.CountChoices))
		for i, n := range session.CountChoices {
			choices[i] = strconv.Itoa(n)
		}
		r.printf("Number of questions (%s): ", strings.Join(choices, "/"))
		line, ok := r.readLine()
		if !ok {
			return setup, ErrInputClosed
		}
		if n, err := strconv.Atoi(line); err == nil && n > 0 {
			setup.Count = n
		}
	}
	return setup, nil
}

// Run plays a started session to its end and prints the report. End of
// input quits the session.
func (r *Runner) Run(st *session.SessionState) (*session.Summary, error) {
	for !st.Ended() {
		r.printQuestion(st)

		choice, ok := r.readAnswer()
		if !ok || choice == "" {
			r.engine.Quit(st)
			break
		}

		fb, err := r.engine.Submit(st, choice)
		if errors.Is(err, session.ErrTimeUp) {
			r.printf("%s\n", noticeStyle.Render("Time is up."))
			break
		}
		if err != nil {
			return nil, err
		}
		r.printFeedback(fb)

		if st.Ended() {
			break
		}
		if err := r.engine.Advance(st); err != nil {
			if errors.Is(err, session.ErrTimeUp) {
				r.printf("%s\n", noticeStyle.Render("Time is up."))
				break
			}
			return nil, err
		}
	}

	sum := session.BuildSummary(st, r.engine.Config())
	r.printf("\n%s", session.RenderReport(sum))
	return sum, nil
}

func (r *Runner) printQuestion(st *session.SessionState) {
	q := st.Current
	meta := fmt.Sprintf("Q %d/%d  [%s]", st.Answered()+1, st.TargetCount,
		r.engine.Config().LevelName(st.CurrentLevel))
	if q.Topic != "" {
		meta += "  " + q.Topic
	}
	meta += "  " + session.FormatDuration(r.engine.Remaining(st)) + " left"

	r.printf("\n%s\n%s\n", metaStyle.Render(meta), q.Text)
	for i, text := range q.Options {
		r.printf("  %s) %s\n", bank.Options[i], text)
	}
}

// readAnswer prompts until a valid option or q. It returns "" for quit and
// false when input ends.
func (r *Runner) readAnswer() (bank.Option, bool) {
	for {
		r.printf("Answer (A-D, q to quit): ")
		line, ok := r.readLine()
		if !ok {
			return "", false
		}
		if strings.EqualFold(line, "q") {
			return "", true
		}
		if o, err := bank.ParseOption(line); err == nil {
			return o, true
		}
		r.printf("%s\n", dimStyle.Render(session.ErrNoAnswer.Error()))
	}
}

func (r *Runner) printFeedback(fb *session.Feedback) {
	if fb.Attempt.Correct {
		r.printf("%s\n", correctStyle.Render("Correct!"))
	} else {
		r.printf("%s\n", wrongStyle.Render(fmt.Sprintf("Wrong. The answer is %s) %s",
			fb.Attempt.Answer, fb.Question.OptionText(fb.Attempt.Answer))))
	}
	if fb.Question.Explanation != "" {
		r.printf("%s\n", dimStyle.Render(fb.Question.Explanation))
	}
	if c := fb.LevelChange; c != nil {
		cfg := r.engine.Config()
		word := "Level down"
		if c.Promoted() {
			word = "Level up"
		}
		r.printf("%s\n", noticeStyle.Render(fmt.Sprintf("%s: %s -> %s", word, cfg.LevelName(c.From), cfg.LevelName(c.To))))
	}
}
