package bank

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an immutable, ordered collection of questions. A Set is safe for
// concurrent reads.
type Set struct {
	questions []Question
	byID      map[string]int
}

// NewSet validates the questions and builds a Set. IDs must be unique.
func NewSet(questions []Question) (*Set, error) {
	s := &Set{
		questions: make([]Question, len(questions)),
		byID:      make(map[string]int, len(questions)),
	}
	copy(s.questions, questions)
	for i, q := range s.questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d (%q): %w", i+1, q.ID, err)
		}
		if _, dup := s.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		s.byID[q.ID] = i
	}
	return s, nil
}

// Len returns the number of questions.
func (s *Set) Len() int { return len(s.questions) }

// All returns a copy of the questions in load order.
func (s *Set) All() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Get looks a question up by ID.
func (s *Set) Get(id string) (Question, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Question{}, false
	}
	return s.questions[i], true
}

// Subjects returns the distinct subjects, sorted.
func (s *Set) Subjects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range s.questions {
		if !seen[q.Subject] {
			seen[q.Subject] = true
			out = append(out, q.Subject)
		}
	}
	sort.Strings(out)
	return out
}

// HasSubject reports whether any question belongs to subject
// (case-insensitive).
func (s *Set) HasSubject(subject string) bool {
	for _, q := range s.questions {
		if strings.EqualFold(q.Subject, subject) {
			return true
		}
	}
	return false
}

// Subject returns the questions of one subject (case-insensitive) in load
// order.
func (s *Set) Subject(subject string) []Question {
	return s.Filter(Filter{Subject: subject})
}

// Topics returns the distinct non-empty topics of subject, sorted. An empty
// subject means all subjects.
func (s *Set) Topics(subject string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range s.questions {
		if subject != "" && !strings.EqualFold(q.Subject, subject) {
			continue
		}
		if q.Topic != "" && !seen[q.Topic] {
			seen[q.Topic] = true
			out = append(out, q.Topic)
		}
	}
	sort.Strings(out)
	return out
}

// MaxLevel returns the highest level present, or 0 for an empty set.
func (s *Set) MaxLevel() Level {
	var max Level
	for _, q := range s.questions {
		if q.Level > max {
			max = q.Level
		}
	}
	return max
}

// Filter selects questions. Zero-valued fields do not constrain.
type Filter struct {
	Subject string
	Level   Level
	Topic   string
	Exclude map[string]bool
}

// Match reports whether q passes f.
func (f Filter) Match(q Question) bool {
	if f.Subject != "" && !strings.EqualFold(q.Subject, f.Subject) {
		return false
	}
	if f.Level != 0 && q.Level != f.Level {
		return false
	}
	if f.Topic != "" && !strings.EqualFold(q.Topic, f.Topic) {
		return false
	}
	if f.Exclude[q.ID] {
		return false
	}
	return true
}

// Filter returns the questions passing f, in load order.
func (s *Set) Filter(f Filter) []Question {
	var out []Question
	for _, q := range s.questions {
		if f.Match(q) {
			out = append(out, q)
		}
	}
	return out
}

// SubjectStats counts the questions of one subject per level.
type SubjectStats struct {
	Subject string
	Total   int
	ByLevel map[Level]int
	Topics  int
}

// Stats summarizes the set per subject, ordered by subject name.
func (s *Set) Stats() []SubjectStats {
	var out []SubjectStats
	for _, subject := range s.Subjects() {
		st := SubjectStats{Subject: subject, ByLevel: make(map[Level]int)}
		for _, q := range s.Subject(subject) {
			st.Total++
			st.ByLevel[q.Level]++
		}
		st.Topics = len(s.Topics(subject))
		out = append(out, st)
	}
	return out
}
