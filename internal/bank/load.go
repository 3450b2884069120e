package bank

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadError locates a problem in a bank file.
type LoadError struct {
	Path  string
	Row   int // 1-based data row (CSV) or list index + 1 (YAML/JSON); 0 if unknown
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ":%d", e.Row)
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

type loadConfig struct {
	levelNames []string
	path       string
}

// LoadOption customizes loading.
type LoadOption func(*loadConfig)

// WithLevelNames sets the names used to resolve textual levels.
func WithLevelNames(names []string) LoadOption {
	return func(c *loadConfig) {
		if len(names) > 0 {
			c.levelNames = names
		}
	}
}

func newLoadConfig(path string, opts []LoadOption) loadConfig {
	c := loadConfig{levelNames: DefaultLevelNames, path: path}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Load reads a bank file. The format is chosen by extension: .csv, .yaml,
// .yml or .json.
func Load(path string, opts ...LoadOption) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	cfg := newLoadConfig(path, opts)

	var questions []Question
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		questions, err = parseCSV(bytes.NewReader(data), cfg)
	case ".yaml", ".yml":
		questions, err = parseYAML(data, cfg)
	case ".json":
		questions, err = parseJSON(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported bank format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	set, err := NewSet(questions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ReadCSV parses a CSV bank from r.
func ReadCSV(r io.Reader, opts ...LoadOption) (*Set, error) {
	questions, err := parseCSV(r, newLoadConfig("", opts))
	if err != nil {
		return nil, err
	}
	return NewSet(questions)
}

// columnAliases maps canonical column names to accepted header spellings.
var columnAliases = map[string][]string{
	"id":          {"id", "question_id", "qid"},
	"subject":     {"subject"},
	"topic":       {"topic", "concept"},
	"level":       {"level", "difficulty", "difficulty_level"},
	"text":        {"question", "text", "question_text"},
	"option_a":    {"option_a", "a"},
	"option_b":    {"option_b", "b"},
	"option_c":    {"option_c", "c"},
	"option_d":    {"option_d", "d"},
	"correct":     {"correct_option", "correct", "answer"},
	"explanation": {"explanation"},
}

var requiredColumns = []string{"subject", "level", "text", "option_a", "option_b", "option_c", "option_d", "correct"}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func parseCSV(r io.Reader, cfg loadConfig) ([]Question, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Path: cfg.path, Err: errors.New("empty file")}
		}
		return nil, &LoadError{Path: cfg.path, Err: err}
	}

	cols := make(map[string]int)
	for i, h := range header {
		name := normalizeHeader(h)
		for canon, aliases := range columnAliases {
			for _, a := range aliases {
				if name == a {
					cols[canon] = i
				}
			}
		}
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, &LoadError{Path: cfg.path, Field: c, Err: errors.New("missing column")}
		}
	}

	var out []Question
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: cfg.path, Row: row, Err: err}
		}
		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if isBlank(rec) {
			continue
		}

		q := Question{
			ID:          get("id"),
			Subject:     get("subject"),
			Topic:       get("topic"),
			Text:        get("text"),
			Options:     [4]string{get("option_a"), get("option_b"), get("option_c"), get("option_d")},
			Explanation: get("explanation"),
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("row-%d", row)
		}
		if q.Level, err = ParseLevel(get("level"), cfg.levelNames); err != nil {
			return nil, &LoadError{Path: cfg.path, Row: row, Field: "level", Err: err}
		}
		if q.Correct, err = ParseOption(get("correct")); err != nil {
			return nil, &LoadError{Path: cfg.path, Row: row, Field: "correct", Err: err}
		}
		if err := q.Validate(); err != nil {
			return nil, &LoadError{Path: cfg.path, Row: row, Err: err}
		}
		out = append(out, q)
	}
	return out, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// bankFile is the YAML/JSON document layout.
type bankFile struct {
	Version   string         `yaml:"version" json:"version"`
	Questions []questionFile `yaml:"questions" json:"questions"`
}

type questionFile struct {
	ID          string    `yaml:"id" json:"id"`
	Subject     string    `yaml:"subject" json:"subject"`
	Topic       string    `yaml:"topic,omitempty" json:"topic,omitempty"`
	Level       levelText `yaml:"level" json:"level"`
	Text        string    `yaml:"text" json:"text"`
	Options     []string  `yaml:"options" json:"options"`
	Answer      string    `yaml:"answer" json:"answer"`
	Explanation string    `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// levelText holds a level as written, either a number or a name.
type levelText string

func (l *levelText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = levelText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("level must be a number or a name: %w", err)
	}
	*l = levelText(n.String())
	return nil
}

func (l *levelText) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: level must be a scalar", node.Line)
	}
	*l = levelText(node.Value)
	return nil
}

func parseYAML(data []byte, cfg loadConfig) ([]Question, error) {
	var f bankFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, &LoadError{Path: cfg.path, Err: fmt.Errorf("parse yaml: %w", err)}
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, &LoadError{Path: cfg.path, Err: errors.New("parse yaml: multiple documents are not supported")}
		}
		return nil, &LoadError{Path: cfg.path, Err: fmt.Errorf("parse yaml: %w", err)}
	}
	return f.questions(cfg)
}

func parseJSON(data []byte, cfg loadConfig) ([]Question, error) {
	var f bankFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return nil, &LoadError{Path: cfg.path, Err: fmt.Errorf("parse json: %w", err)}
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, &LoadError{Path: cfg.path, Err: errors.New("parse json: multiple documents are not supported")}
		}
		return nil, &LoadError{Path: cfg.path, Err: fmt.Errorf("parse json: %w", err)}
	}
	return f.questions(cfg)
}

func (f bankFile) questions(cfg loadConfig) ([]Question, error) {
	if err := CheckVersion(f.Version); err != nil {
		return nil, &LoadError{Path: cfg.path, Field: "version", Err: err}
	}
	out := make([]Question, 0, len(f.Questions))
	for i, qf := range f.Questions {
		row := i + 1
		if len(qf.Options) != 4 {
			return nil, &LoadError{Path: cfg.path, Row: row, Field: "options",
				Err: fmt.Errorf("want 4 options, got %d", len(qf.Options))}
		}
		q := Question{
			ID:          strings.TrimSpace(qf.ID),
			Subject:     strings.TrimSpace(qf.Subject),
			Topic:       strings.TrimSpace(qf.Topic),
			Text:        strings.TrimSpace(qf.Text),
			Explanation: strings.TrimSpace(qf.Explanation),
		}
		copy(q.Options[:], qf.Options)
		var err error
		if q.Level, err = ParseLevel(string(qf.Level), cfg.levelNames); err != nil {
			return nil, &LoadError{Path: cfg.path, Row: row, Field: "level", Err: err}
		}
		if q.Correct, err = ParseOption(qf.Answer); err != nil {
			return nil, &LoadError{Path: cfg.path, Row: row, Field: "answer", Err: err}
		}
		if err := q.Validate(); err != nil {
			return nil, &LoadError{Path: cfg.path, Row: row, Err: err}
		}
		out = append(out, q)
	}
	return out, nil
}
