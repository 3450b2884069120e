package adaptive

import (
	"fmt"
	"sort"
)

// Preset names.
const (
	PresetDefault          = "default"
	PresetThreeLevel       = "three-level"
	PresetTopicAlternating = "topic-alternating"
	PresetConceptRotation  = "concept-rotation"
)

var presets = map[string]struct {
	desc  string
	build func() Config
}{
	PresetDefault: {
		desc:  "five levels, promote on 3/3, demote on 0/3",
		build: DefaultConfig,
	},
	PresetThreeLevel: {
		desc: "Easy, Medium and Hard only",
		build: func() Config {
			c := DefaultConfig()
			c.Levels = []string{"Easy", "Medium", "Hard"}
			return c
		},
	},
	PresetTopicAlternating: {
		desc: "alternate Percentages and Ratio & Proportion at the easiest level",
		build: func() Config {
			c := DefaultConfig()
			c.TopicRotation = &TopicRotation{
				Level:  1,
				Topics: []string{"Percentages", "Ratio & Proportion"},
			}
			return c
		},
	},
	PresetConceptRotation: {
		desc: "promotion only, no topic twice per block, plain warm-up questions",
		build: func() Config {
			c := DefaultConfig()
			c.Demote = false
			c.RotateTopicsInBlock = true
			c.Warmup = &Warmup{
				Questions:     3,
				MaxTextLength: 120,
				MaxNumber:     100,
				ExcludeTerms: []string{
					"mixture", "alligation", "compound", "per annum",
					"successive", "discount", "speed", "work together",
				},
			}
			c.Fallback = []Stage{StageLevel, StageUnasked, StageAny}
			return c
		},
	},
}

// Preset returns a fresh copy of the named preset.
func Preset(name string) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q (known: %v)", name, PresetNames())
	}
	c := p.build()
	c.Preset = name
	return c, nil
}

// PresetNames lists the presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PresetDescription returns a one-line summary of the named preset.
func PresetDescription(name string) string {
	return presets[name].desc
}
