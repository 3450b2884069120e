package adaptive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsAreValid(t *testing.T) {
	for _, name := range PresetNames() {
		cfg, err := Preset(name)
		require.NoError(t, err, name)
		assert.NoError(t, cfg.Validate(), name)
		assert.Equal(t, name, cfg.Preset)
		assert.NotEmpty(t, PresetDescription(name))
	}
	_, err := Preset("nope")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestPresetReturnsFreshCopies(t *testing.T) {
	a, _ := Preset(PresetConceptRotation)
	a.Warmup.Questions = 99
	a.Levels[0] = "changed"
	b, _ := Preset(PresetConceptRotation)
	assert.Equal(t, 3, b.Warmup.Questions)
	assert.Equal(t, "Easy", b.Levels[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"no levels", func(c *Config) { c.Levels = nil }, "at least one level"},
		{"dup levels", func(c *Config) { c.Levels = []string{"Easy", "easy"} }, "duplicate level"},
		{"start level", func(c *Config) { c.StartLevel = 6 }, "start_level"},
		{"block size", func(c *Config) { c.BlockSize = 0 }, "block_size"},
		{"seconds", func(c *Config) { c.SecondsPerQuestion = 0 }, "seconds_per_question"},
		{"rotation topics", func(c *Config) { c.TopicRotation = &TopicRotation{Level: 1, Topics: []string{"x"}} }, "two topics"},
		{"fallback empty", func(c *Config) { c.Fallback = nil }, "must not be empty"},
		{"fallback end", func(c *Config) { c.Fallback = []Stage{StageAny, StageUnasked} }, "end with"},
		{"fallback repeat", func(c *Config) { c.Fallback = []Stage{StageUnasked, StageUnasked, StageAny} }, "repeated"},
		{"fallback skips unasked", func(c *Config) { c.Fallback = []Stage{StageLevel, StageAny} }, "unasked"},
		{"fallback primary", func(c *Config) { c.Fallback = []Stage{StagePrimary, StageUnasked, StageAny} }, "unknown fallback"},
		{"version", func(c *Config) { c.Version = "v3" }, "unsupported version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseConfig_OverridesPreset(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
version: v1
preset: concept-rotation
block_size: 4
seconds_per_question: 30
`))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.BlockSize)
	assert.Equal(t, 30, cfg.SecondsPerQuestion)
	assert.False(t, cfg.Demote, "preset value kept")
	require.NotNil(t, cfg.Warmup)
	assert.Equal(t, 120, cfg.Warmup.MaxTextLength)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig([]byte("blok_size: 3\n"))
	assert.ErrorContains(t, err, "parse yaml")

	_, err = ParseConfig([]byte("fallback: [any]\n"))
	assert.ErrorContains(t, err, "invalid policy")

	_, err = ParseConfig([]byte("preset: mystery\n"))
	assert.ErrorContains(t, err, "unknown preset")

	_, err = ParseConfig([]byte("block_size: 3\n---\nblock_size: 4\n"))
	assert.ErrorContains(t, err, "multiple documents")
}

func TestParseConfig_EmptyIsDefault(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_RoundTripYAML(t *testing.T) {
	cfg, _ := Preset(PresetTopicAlternating)
	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "topic_rotation:"))

	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLevelName(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "Easy", cfg.LevelName(1))
	assert.Equal(t, "Hard", cfg.LevelName(cfg.MaxLevel()))
	assert.Equal(t, "Level 9", cfg.LevelName(9))
}
