package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/store"
)

// Summary holds the data displayed at the end of a session and in history.
type Summary struct {
	SessionID  string
	Subject    string
	Policy     string
	Target     int
	Answered   int
	Score      int
	Accuracy   float64
	StartLevel string
	FinalLevel string
	EndReason  EndReason
	StartedAt  time.Time
	Duration   time.Duration

	ByLevel  []GroupResult
	ByTopic  []GroupResult
	Attempts []AttemptRow
}

// GroupResult counts answers within one level or topic.
type GroupResult struct {
	Name    string
	Asked   int
	Correct int
}

// Accuracy returns Correct/Asked.
func (g GroupResult) Accuracy() float64 {
	if g.Asked == 0 {
		return 0
	}
	return float64(g.Correct) / float64(g.Asked)
}

// AttemptRow is one transcript line prepared for display.
type AttemptRow struct {
	Number     int
	QuestionID string
	Topic      string
	Level      string
	Chosen     string
	Answer     string
	Correct    bool
	Time       time.Duration
	At         time.Time
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(st *SessionState, cfg adaptive.Config) *Summary {
	s := &Summary{
		SessionID:  st.ID,
		Subject:    st.Subject,
		Policy:     st.Policy,
		Target:     st.TargetCount,
		Answered:   st.Answered(),
		Score:      st.Score,
		Accuracy:   st.Accuracy(),
		StartLevel: cfg.LevelName(st.StartLevel),
		FinalLevel: cfg.LevelName(st.Adaptive.Level),
		EndReason:  st.EndReason,
		StartedAt:  st.StartedAt,
		Duration:   st.Elapsed,
	}
	for _, a := range st.Transcript {
		s.Attempts = append(s.Attempts, AttemptRow{
			Number:     a.Number,
			QuestionID: a.QuestionID,
			Topic:      a.Topic,
			Level:      cfg.LevelName(a.Level),
			Chosen:     string(a.Chosen),
			Answer:     string(a.Answer),
			Correct:    a.Correct,
			Time:       a.ResponseTime(),
			At:         a.AnsweredAt,
		})
	}
	s.group(levelOrder(cfg, st.Transcript))
	return s
}

// SummaryFromJournal rebuilds a Summary from stored events. Level names
// come from the preset the session ran with, or the default scale when the
// policy was custom.
func SummaryFromJournal(rec store.SessionRecord, attempts []store.AttemptRecord) *Summary {
	cfg, err := adaptive.Preset(rec.Policy)
	if err != nil {
		cfg = adaptive.DefaultConfig()
	}

	s := &Summary{
		SessionID:  rec.SessionID,
		Subject:    rec.Subject,
		Policy:     rec.Policy,
		Target:     rec.TargetCount,
		Answered:   len(attempts),
		StartLevel: cfg.LevelName(bank.Level(rec.StartLevel)),
		FinalLevel: cfg.LevelName(bank.Level(rec.StartLevel)),
		EndReason:  EndReason(rec.EndReason),
		StartedAt:  rec.StartedAt,
		Duration:   time.Duration(rec.DurationSecs) * time.Second,
	}
	var transcript []Attempt
	for _, a := range attempts {
		if a.Correct {
			s.Score++
		}
		s.FinalLevel = cfg.LevelName(bank.Level(a.LevelAfter))
		s.Attempts = append(s.Attempts, AttemptRow{
			Number:     a.Number,
			QuestionID: a.QuestionID,
			Topic:      a.Topic,
			Level:      cfg.LevelName(bank.Level(a.Level)),
			Chosen:     a.Chosen,
			Answer:     a.CorrectOption,
			Correct:    a.Correct,
			Time:       time.Duration(a.TimeMs) * time.Millisecond,
			At:         a.Timestamp,
		})
		transcript = append(transcript, Attempt{Level: bank.Level(a.Level)})
	}
	if rec.Ended {
		s.FinalLevel = cfg.LevelName(bank.Level(rec.FinalLevel))
	}
	if s.Answered > 0 {
		s.Accuracy = float64(s.Score) / float64(s.Answered)
	}
	if s.EndReason == "" {
		s.EndReason = "unfinished"
	}
	s.group(levelOrder(cfg, transcript))
	return s
}

// levelOrder maps each level name to its rank so groups sort easiest first.
func levelOrder(cfg adaptive.Config, transcript []Attempt) map[string]int {
	order := make(map[string]int)
	for _, a := range transcript {
		order[cfg.LevelName(a.Level)] = int(a.Level)
	}
	return order
}

func (s *Summary) group(levelRank map[string]int) {
	levels := make(map[string]*GroupResult)
	topics := make(map[string]*GroupResult)
	add := func(m map[string]*GroupResult, name string, correct bool) {
		g, ok := m[name]
		if !ok {
			g = &GroupResult{Name: name}
			m[name] = g
		}
		g.Asked++
		if correct {
			g.Correct++
		}
	}
	for _, a := range s.Attempts {
		add(levels, a.Level, a.Correct)
		topic := a.Topic
		if topic == "" {
			topic = "(none)"
		}
		add(topics, topic, a.Correct)
	}

	s.ByLevel = flatten(levels, func(a, b GroupResult) bool {
		return levelRank[a.Name] < levelRank[b.Name]
	})
	s.ByTopic = flatten(topics, func(a, b GroupResult) bool {
		if a.Asked != b.Asked {
			return a.Asked > b.Asked
		}
		return a.Name < b.Name
	})
}

func flatten(m map[string]*GroupResult, less func(a, b GroupResult) bool) []GroupResult {
	out := make([]GroupResult, 0, len(m))
	for _, g := range m {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

var (
	reportTitle  = lipgloss.NewStyle().Bold(true)
	reportBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	reportHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	reportCell   = lipgloss.NewStyle().Padding(0, 1)
	reportRight  = reportCell.Align(lipgloss.Right)
	reportGood   = reportCell.Foreground(lipgloss.Color("#22C55E"))
	reportBad    = reportCell.Foreground(lipgloss.Color("#EF4444"))
)

// RenderReport renders the summary as plain tables for terminals and
// redirected output.
func RenderReport(s *Summary) string {
	var b strings.Builder

	b.WriteString(reportTitle.Render(fmt.Sprintf("%s test  %s", s.Subject, shortID(s.SessionID))))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Score:        %d / %d\n", s.Score, s.Answered)
	fmt.Fprintf(&b, "Accuracy:     %.0f%%\n", s.Accuracy*100)
	fmt.Fprintf(&b, "Questions:    %d of %d\n", s.Answered, s.Target)
	fmt.Fprintf(&b, "Level:        %s -> %s\n", s.StartLevel, s.FinalLevel)
	fmt.Fprintf(&b, "Ended:        %s after %s\n", s.EndReason, FormatDuration(s.Duration))
	if s.Policy != "" {
		fmt.Fprintf(&b, "Policy:       %s\n", s.Policy)
	}

	if len(s.ByLevel) > 0 {
		b.WriteString("\n")
		b.WriteString(groupTable("Level", s.ByLevel))
		b.WriteString("\n")
	}
	if len(s.ByTopic) > 1 || (len(s.ByTopic) == 1 && s.ByTopic[0].Name != "(none)") {
		b.WriteString("\n")
		b.WriteString(groupTable("Topic", s.ByTopic))
		b.WriteString("\n")
	}
	if len(s.Attempts) > 0 {
		b.WriteString("\n")
		b.WriteString(TranscriptTable(s.Attempts))
		b.WriteString("\n")
	}
	return b.String()
}

func groupTable(title string, groups []GroupResult) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(reportBorder).
		Headers(title, "Asked", "Correct", "Accuracy").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return reportHeader
			case col == 0:
				return reportCell
			default:
				return reportRight
			}
		})
	for _, g := range groups {
		t.Row(g.Name, fmt.Sprint(g.Asked), fmt.Sprint(g.Correct), fmt.Sprintf("%.0f%%", g.Accuracy()*100))
	}
	return t.String()
}

// TranscriptTable renders the attempts, one row per answer.
func TranscriptTable(rows []AttemptRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(reportBorder).
		Headers("#", "Question", "Level", "Topic", "Chosen", "Answer", "Result", "Time")
	for _, r := range rows {
		t.Row(
			fmt.Sprint(r.Number), r.QuestionID, r.Level, r.Topic,
			r.Chosen, r.Answer, result(r.Correct), FormatDuration(r.Time),
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return reportHeader
		case col == 6 && row < len(rows) && rows[row].Correct:
			return reportGood
		case col == 6 && row < len(rows):
			return reportBad
		case col == 0 || col == 7:
			return reportRight
		default:
			return reportCell
		}
	})
	return t.String()
}

func result(correct bool) string {
	if correct {
		return "correct"
	}
	return "wrong"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatDuration renders d as m:ss, or h:mm:ss past an hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	sec := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
