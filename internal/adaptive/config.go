package adaptive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/adaptiq/internal/bank"
)

// Stage names one pool in the selection order.
type Stage string

const (
	// StagePrimary is the unasked, current-level pool with every configured
	// refinement (topic rotation, block topics, warm-up) applied.
	StagePrimary Stage = "primary"

	// StageLevel drops the refinements but keeps the current level.
	StageLevel Stage = "level"

	// StageUnasked takes any unasked question of the subject.
	StageUnasked Stage = "unasked"

	// StageAny takes any question of the subject, asked or not.
	StageAny Stage = "any"
)

func (s Stage) valid() bool {
	switch s {
	case StageLevel, StageUnasked, StageAny:
		return true
	}
	return false
}

// TopicRotation alternates between topics on successive turns while the
// learner is at Level.
type TopicRotation struct {
	Level  int      `yaml:"level"`
	Topics []string `yaml:"topics"`
}

// Warmup restricts the first Questions picks to short, plain items.
type Warmup struct {
	Questions     int      `yaml:"questions"`
	MaxTextLength int      `yaml:"max_text_length"`
	MaxNumber     int      `yaml:"max_number"`
	ExcludeTerms  []string `yaml:"exclude_terms"`
}

// Config is the adaptive policy. The zero value is not usable; start from
// DefaultConfig or a Preset.
type Config struct {
	Version string `yaml:"version,omitempty"`

	// Preset names the preset a policy file builds on. Informational once
	// the config is loaded.
	Preset string `yaml:"preset,omitempty"`

	// Levels holds the level names, easiest first. Level n is Levels[n-1].
	Levels     []string `yaml:"levels"`
	StartLevel int      `yaml:"start_level"`

	// BlockSize is the number of answers evaluated together.
	BlockSize int  `yaml:"block_size"`
	Promote   bool `yaml:"promote"`
	Demote    bool `yaml:"demote"`

	// SecondsPerQuestion sets the session budget: count x seconds.
	SecondsPerQuestion int `yaml:"seconds_per_question"`

	TopicRotation       *TopicRotation `yaml:"topic_rotation,omitempty"`
	RotateTopicsInBlock bool           `yaml:"rotate_topics_in_block"`
	Warmup              *Warmup        `yaml:"warmup,omitempty"`

	// Fallback is tried in order when the primary pool is empty.
	Fallback []Stage `yaml:"fallback"`
}

// DefaultConfig returns the standard policy: five levels, blocks of three,
// promotion and demotion, one minute per question.
func DefaultConfig() Config {
	return Config{
		Version:            bank.FileVersion,
		Preset:             PresetDefault,
		Levels:             append([]string(nil), bank.DefaultLevelNames...),
		StartLevel:         1,
		BlockSize:          3,
		Promote:            true,
		Demote:             true,
		SecondsPerQuestion: 60,
		Fallback:           []Stage{StageUnasked, StageAny},
	}
}

// MaxLevel returns the hardest level.
func (c Config) MaxLevel() bank.Level { return bank.Level(len(c.Levels)) }

// LevelName returns the display name of l, or "Level n" outside the scale.
func (c Config) LevelName(l bank.Level) string {
	if l >= 1 && int(l) <= len(c.Levels) {
		return c.Levels[l-1]
	}
	return fmt.Sprintf("Level %d", l)
}

// Validate checks the config for consistency.
func (c Config) Validate() error {
	if err := bank.CheckVersion(c.Version); err != nil {
		return err
	}
	if len(c.Levels) == 0 {
		return errors.New("at least one level is required")
	}
	seen := make(map[string]bool)
	for i, name := range c.Levels {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return fmt.Errorf("level %d has no name", i+1)
		}
		if seen[key] {
			return fmt.Errorf("duplicate level name %q", name)
		}
		seen[key] = true
	}
	if c.StartLevel < 1 || c.StartLevel > len(c.Levels) {
		return fmt.Errorf("start_level %d out of range 1..%d", c.StartLevel, len(c.Levels))
	}
	if c.BlockSize < 1 {
		return fmt.Errorf("block_size must be >= 1, got %d", c.BlockSize)
	}
	if c.SecondsPerQuestion < 1 {
		return fmt.Errorf("seconds_per_question must be >= 1, got %d", c.SecondsPerQuestion)
	}
	if tr := c.TopicRotation; tr != nil {
		if tr.Level < 1 || tr.Level > len(c.Levels) {
			return fmt.Errorf("topic_rotation.level %d out of range", tr.Level)
		}
		if len(tr.Topics) < 2 {
			return errors.New("topic_rotation needs at least two topics")
		}
	}
	if w := c.Warmup; w != nil {
		if w.Questions < 0 || w.MaxTextLength < 0 || w.MaxNumber < 0 {
			return errors.New("warmup values must not be negative")
		}
	}
	return validateFallback(c.Fallback)
}

func validateFallback(stages []Stage) error {
	if len(stages) == 0 {
		return errors.New("fallback must not be empty")
	}
	seen := make(map[Stage]bool)
	for _, s := range stages {
		if !s.valid() {
			return fmt.Errorf("unknown fallback stage %q", s)
		}
		if seen[s] {
			return fmt.Errorf("fallback stage %q repeated", s)
		}
		seen[s] = true
	}
	if stages[len(stages)-1] != StageAny {
		return errors.New("fallback must end with \"any\"")
	}
	// Reaching "any" while unasked questions remain would repeat a question.
	if !seen[StageUnasked] {
		return errors.New("fallback must try \"unasked\" before \"any\"")
	}
	return nil
}

// LoadConfig reads a YAML policy file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read policy: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML policy. Fields left out keep the values of the
// preset named by the "preset" key, or of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	cfg := DefaultConfig()
	if head.Preset != "" {
		p, err := Preset(head.Preset)
		if err != nil {
			return Config{}, err
		}
		cfg = p
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return Config{}, errors.New("parse yaml: multiple documents are not supported")
		}
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid policy: %w", err)
	}
	return cfg, nil
}

// YAML renders c in the policy file format.
func (c Config) YAML() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
