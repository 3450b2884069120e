package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/screen"
)

type pingMsg struct{}

// recordingScreen counts Init calls and the messages it receives.
type recordingScreen struct {
	name  string
	inits int
	seen  []tea.Msg
}

func (s *recordingScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *recordingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *recordingScreen) View(w, h int) string { return s.name }
func (s *recordingScreen) Title() string        { return s.name }

func titles(r *Router) []string {
	var out []string
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNavigationMessages(t *testing.T) {
	home := &recordingScreen{name: "home"}
	setup := &recordingScreen{name: "setup"}
	quiz := &recordingScreen{name: "quiz"}
	summary := &recordingScreen{name: "summary"}

	steps := []struct {
		msg  tea.Msg
		want []string
	}{
		{PushScreenMsg{Screen: setup}, []string{"home", "setup"}},
		{ReplaceScreenMsg{Screen: quiz}, []string{"home", "quiz"}},
		{ReplaceScreenMsg{Screen: summary}, []string{"home", "summary"}},
		{PopScreenMsg{}, []string{"home"}},
		{PopScreenMsg{}, []string{"home"}},
	}

	r := New(home)
	for i, st := range steps {
		r.Update(st.msg)
		if got := titles(r); !equal(got, st.want) {
			t.Fatalf("step %d: stack = %v, want %v", i, got, st.want)
		}
		if r.Depth() != len(st.want) {
			t.Fatalf("step %d: depth = %d, want %d", i, r.Depth(), len(st.want))
		}
	}

	for _, s := range []*recordingScreen{setup, quiz, summary} {
		if s.inits != 1 {
			t.Errorf("%s: Init ran %d times, want 1", s.name, s.inits)
		}
	}
	if len(home.seen) != 0 {
		t.Errorf("navigation messages reached the screen: %v", home.seen)
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	home := &recordingScreen{name: "home"}
	history := &recordingScreen{name: "history"}
	r := New(home)
	r.Push(history)

	r.Update(pingMsg{})

	if len(history.seen) != 1 {
		t.Errorf("active screen saw %d messages, want 1", len(history.seen))
	}
	if len(home.seen) != 0 {
		t.Errorf("covered screen saw %d messages, want 0", len(home.seen))
	}
	if got := r.View(80, 24); got != "history" {
		t.Errorf("View = %q, want history", got)
	}
}

func TestPopKeepsRoot(t *testing.T) {
	r := New(&recordingScreen{name: "home"})
	if cmd := r.Pop(); cmd != nil {
		t.Error("pop at root returned a command")
	}
	if r.Active().Title() != "home" {
		t.Errorf("active = %q, want home", r.Active().Title())
	}
}
