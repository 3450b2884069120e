package bank

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultLevelNames is the five-step difficulty scale used when a bank gives
// levels by name.
var DefaultLevelNames = []string{"Easy", "Easy-Medium", "Medium", "Medium-Hard", "Hard"}

// FileVersion is the current bank and policy file format version.
const FileVersion = "v1"

// ParseLevel resolves a level given either as a positive number or as one
// of names (case-insensitive; spaces, dashes and underscores are
// interchangeable). A compound name such as "Medium-Hard" that is not on a
// coarser scale falls back to its first part, so it maps to "Medium".
func ParseLevel(s string, names []string) (Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty level")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("level %d out of range", n)
		}
		return Level(n), nil
	}
	if l, ok := matchLevel(s, names); ok {
		return l, nil
	}
	if head, _, found := strings.Cut(s, "-"); found {
		if l, ok := matchLevel(head, names); ok {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q (known: %s)", s, strings.Join(names, ", "))
}

func matchLevel(s string, names []string) (Level, bool) {
	key := levelKey(s)
	for i, name := range names {
		if levelKey(name) == key {
			return Level(i + 1), true
		}
	}
	return 0, false
}

func levelKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// CheckVersion accepts any semantic version with major version v1. An empty
// version is treated as v1.
func CheckVersion(v string) error {
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid version %q", v)
	}
	if semver.Major(v) != semver.Major(FileVersion) {
		return fmt.Errorf("unsupported version %s (want %s.x)", v, FileVersion)
	}
	return nil
}
