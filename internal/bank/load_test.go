package bank

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_CSVWithIDs(t *testing.T) {
	path := writeFile(t, "bank.csv", `question_id,subject,topic,difficulty_level,question,option_a,option_b,option_c,option_d,correct_option
q1,Aptitude,Percentages,1,What is 10% of 50?,5,10,15,20,A
q2,Aptitude,Ratio & Proportion,Hard,"Split 10 in 2:3, first part?",2,4,6,8,b
`)
	set, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	q2, ok := set.Get("q2")
	require.True(t, ok)
	assert.Equal(t, Level(5), q2.Level)
	assert.Equal(t, OptionB, q2.Correct)
	assert.Equal(t, "Split 10 in 2:3, first part?", q2.Text)
}

func TestLoad_CSVConceptLayout(t *testing.T) {
	path := writeFile(t, "bank.csv", `Subject,Concept,Difficulty,Question,Option_A,Option_B,Option_C,Option_D,Correct_Option
English,Synonyms,Easy-Medium,Synonym of RAPID?,Slow,Swift,Calm,Heavy,Option_B
,,,,,,,,
GK,Science,easy medium,Red planet?,Venus,Mars,Jupiter,Saturn,B
`)
	set, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	first, ok := set.Get("row-1")
	require.True(t, ok)
	assert.Equal(t, "Synonyms", first.Topic)
	assert.Equal(t, Level(2), first.Level)
	assert.Equal(t, OptionB, first.Correct)

	_, ok = set.Get("row-3")
	assert.True(t, ok, "blank rows keep row numbering")
}

func TestLoad_CSVErrors(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		path := writeFile(t, "bank.csv", "subject,question\nA,B\n")
		_, err := Load(path)
		var le *LoadError
		require.True(t, errors.As(err, &le))
		assert.Equal(t, "level", le.Field)
	})
	t.Run("unknown level", func(t *testing.T) {
		path := writeFile(t, "bank.csv", `subject,level,question,option_a,option_b,option_c,option_d,answer
Math,Impossible,Q,1,2,3,4,A
`)
		_, err := Load(path)
		var le *LoadError
		require.True(t, errors.As(err, &le))
		assert.Equal(t, 1, le.Row)
		assert.Equal(t, "level", le.Field)
		assert.Contains(t, err.Error(), "bank.csv:1: level:")
	})
	t.Run("custom level names", func(t *testing.T) {
		path := writeFile(t, "bank.csv", `subject,level,question,option_a,option_b,option_c,option_d,answer
Math,Impossible,Q,1,2,3,4,A
`)
		set, err := Load(path, WithLevelNames([]string{"Simple", "Impossible"}))
		require.NoError(t, err)
		q, _ := set.Get("row-1")
		assert.Equal(t, Level(2), q.Level)
	})
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "bank.yaml", `version: v1.2.0
questions:
  - id: y1
    subject: GK
    topic: Science
    level: 2
    text: What is H2O?
    options: [Water, Salt, Air, Gold]
    answer: A
  - id: y2
    subject: GK
    level: Medium
    text: Capital of Japan?
    options: [Seoul, Tokyo, Beijing, Osaka]
    answer: "2"
`)
	set, err := Load(path)
	require.NoError(t, err)
	y2, ok := set.Get("y2")
	require.True(t, ok)
	assert.Equal(t, Level(3), y2.Level)
	assert.Equal(t, OptionB, y2.Correct)
}

func TestLoad_YAMLRejectsUnknownFieldsAndVersions(t *testing.T) {
	_, err := Load(writeFile(t, "bank.yaml", "version: v1\nquestionz: []\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bank.yaml", "version: v2.0.0\nquestions: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version")
}

func TestLoad_RejectsMultipleDocuments(t *testing.T) {
	doc := "version: v1\nquestions:\n  - {id: y1, subject: Math, level: 1, text: \"1+1?\", options: [\"1\", \"2\", \"3\", \"4\"], answer: B}\n"
	_, err := Load(writeFile(t, "bank.yaml", doc+"---\n"+doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple documents")

	obj := `{"version":"v1","questions":[]}`
	_, err = Load(writeFile(t, "bank.json", obj+"\n"+obj))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple documents")
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "bank.json", `{"version":"v1","questions":[
 {"id":"j1","subject":"Math","level":1,"text":"1+1?","options":["1","2","3","4"],"answer":"B"},
 {"id":"j2","subject":"Math","level":"Hard","text":"2+2?","options":["1","2","3","4"],"answer":"D"}
]}`)
	set, err := Load(path)
	require.NoError(t, err)
	j2, _ := set.Get("j2")
	assert.Equal(t, Level(5), j2.Level)

	_, err = Load(writeFile(t, "bad.json", `{"version":"v1","questions":[{"id":"x","subject":"M","level":1,"text":"t","options":["1","2","3"],"answer":"A"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 4 options")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(writeFile(t, "bank.txt", "hello"))
	assert.ErrorContains(t, err, "unsupported bank format")
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	questions := []Question{
		{ID: "w1", Subject: "GK", Topic: "Science", Level: 2, Text: "Q, with comma", Options: [4]string{"a", "b", "c", "d"}, Correct: OptionC, Explanation: "because"},
		{ID: "w2", Subject: "GK", Level: 7, Text: "Beyond the named scale", Options: [4]string{"a", "b", "c", "d"}, Correct: OptionA},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, questions, DefaultLevelNames))
	assert.True(t, strings.HasPrefix(buf.String(), "question_id,subject,topic,difficulty_level"))
	assert.Contains(t, buf.String(), "Easy-Medium")

	set, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, questions, set.All())
}

func TestDefault(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)
	assert.Equal(t, []string{"Aptitude", "English", "GK"}, set.Subjects())
	assert.GreaterOrEqual(t, len(set.Subject("Aptitude")), 100)
	for _, st := range set.Stats() {
		for level := Level(1); level <= 5; level++ {
			assert.Positive(t, st.ByLevel[level], "%s has no level %d questions", st.Subject, level)
		}
	}
	easy := set.Filter(Filter{Subject: "Aptitude", Level: 1})
	topics := map[string]bool{}
	for _, q := range easy {
		topics[q.Topic] = true
	}
	assert.True(t, topics["Percentages"])
	assert.True(t, topics["Ratio & Proportion"])
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, CheckVersion(""))
	assert.NoError(t, CheckVersion("v1"))
	assert.NoError(t, CheckVersion("1.3.0"))
	assert.Error(t, CheckVersion("v2"))
	assert.Error(t, CheckVersion("banana"))
}

func TestParseLevel_CoarserScale(t *testing.T) {
	three := []string{"Easy", "Medium", "Hard"}
	tests := []struct {
		in   string
		want Level
	}{
		{"Easy", 1},
		{"Easy-Medium", 1},
		{"Medium", 2},
		{"medium-hard", 2},
		{"Hard", 3},
		{"3", 3},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in, three)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	got, err := ParseLevel("Medium-Hard", DefaultLevelNames)
	require.NoError(t, err)
	assert.Equal(t, Level(4), got, "exact names win over the first part")

	_, err = ParseLevel("Brutal-Hard", three)
	assert.Error(t, err)
}

func TestDefault_ThreeLevelScale(t *testing.T) {
	three := []string{"Easy", "Medium", "Hard"}
	set, err := Default(WithLevelNames(three))
	require.NoError(t, err)
	assert.Equal(t, Level(3), set.MaxLevel())

	five, err := Default()
	require.NoError(t, err)
	assert.Equal(t, five.Len(), set.Len())

	// Every bank "Hard" question stays hard; "Medium-Hard" becomes "Medium".
	for _, q := range five.All() {
		mapped, ok := set.Get(q.ID)
		require.True(t, ok)
		want := map[Level]Level{1: 1, 2: 1, 3: 2, 4: 2, 5: 3}[q.Level]
		assert.Equal(t, want, mapped.Level, q.ID)
	}
	assert.NotEmpty(t, set.Filter(Filter{Subject: "Aptitude", Level: 3}))
}
