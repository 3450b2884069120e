package bank

import (
	"errors"
	"fmt"
	"strings"
)

// Option identifies one of the four answer slots of a question.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// Options lists the answer slots in display order.
var Options = [4]Option{OptionA, OptionB, OptionC, OptionD}

// ParseOption accepts a letter (a-d, A-D) or a 1-based digit.
func ParseOption(s string) (Option, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	switch s {
	case "A", "1":
		return OptionA, nil
	case "B", "2":
		return OptionB, nil
	case "C", "3":
		return OptionC, nil
	case "D", "4":
		return OptionD, nil
	}
	// Some datasets store the option as "Option_B" or "option b".
	s = strings.TrimPrefix(strings.TrimPrefix(s, "OPTION"), "_")
	s = strings.TrimSpace(s)
	if len(s) == 1 && s >= "A" && s <= "D" {
		return Option(s), nil
	}
	return "", fmt.Errorf("invalid option %q", s)
}

// Index returns the 0-based slot of o, or -1 when o is not a valid option.
func (o Option) Index() int {
	for i, opt := range Options {
		if opt == o {
			return i
		}
	}
	return -1
}

// Valid reports whether o is one of A-D.
func (o Option) Valid() bool { return o.Index() >= 0 }

// Level is a 1-based ordinal difficulty. Level 1 is the easiest.
type Level int

// Question is one multiple-choice item. Questions are immutable once
// loaded into a Set.
type Question struct {
	ID      string
	Subject string

	// Topic is optional. Topic-aware policies skip questions without one.
	Topic string

	Level Level
	Text  string

	// Options holds the option texts in A-D order.
	Options [4]string

	Correct Option

	// Explanation is shown after the learner answers. May be empty.
	Explanation string
}

// OptionText returns the text for option o.
func (q Question) OptionText(o Option) string {
	i := o.Index()
	if i < 0 {
		return ""
	}
	return q.Options[i]
}

// IsCorrect reports whether o is the correct option.
func (q Question) IsCorrect(o Option) bool {
	return o == q.Correct
}

var (
	errMissingID      = errors.New("missing id")
	errMissingSubject = errors.New("missing subject")
	errMissingText    = errors.New("missing question text")
	errBadLevel       = errors.New("level must be >= 1")
	errBadCorrect     = errors.New("correct option must be one of A, B, C, D")
)

// Validate checks that q is well-formed.
func (q Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return errMissingID
	}
	if strings.TrimSpace(q.Subject) == "" {
		return errMissingSubject
	}
	if strings.TrimSpace(q.Text) == "" {
		return errMissingText
	}
	if q.Level < 1 {
		return errBadLevel
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("option %s is empty", Options[i])
		}
	}
	if !q.Correct.Valid() {
		return errBadCorrect
	}
	return nil
}
