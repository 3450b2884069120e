package authoring

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/adaptiq/internal/bank"
)

const (
	maxTextLen        = 500
	maxOptionLen      = 200
	maxExplanationLen = 1000
)

// StructuralValidator checks field presence, lengths, and options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q bank.Question, _ map[string]bool) *ValidationError {
	reject := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	if strings.TrimSpace(q.Text) == "" {
		return reject("question is empty")
	}
	if len(q.Text) > maxTextLen {
		return reject("question exceeds %d characters", maxTextLen)
	}
	if len(q.Explanation) > maxExplanationLen {
		return reject("explanation exceeds %d characters", maxExplanationLen)
	}
	if !q.Correct.Valid() {
		return reject("correct option %q is not one of A-D", q.Correct)
	}

	distinct := make(map[string]bank.Option, len(q.Options))
	for i, opt := range q.Options {
		letter := bank.Options[i]
		if strings.TrimSpace(opt) == "" {
			return reject("option %s is empty", letter)
		}
		if len(opt) > maxOptionLen {
			return reject("option %s exceeds %d characters", letter, maxOptionLen)
		}
		key := normalize(opt)
		if prev, ok := distinct[key]; ok {
			return reject("options %s and %s are the same", prev, letter)
		}
		distinct[key] = letter
	}
	return nil
}

// DuplicateValidator rejects questions whose normalized text is already
// known.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q bank.Question, seen map[string]bool) *ValidationError {
	if seen[normalize(q.Text)] {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("duplicate question %q", q.Text),
			Retryable: true,
		}
	}
	return nil
}

// normalize lowercases s and collapses runs of non-alphanumerics into a
// single space.
func normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
			space = false
			continue
		}
		space = true
	}
	return b.String()
}
