package ats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBuiltin(t *testing.T) {
	names, err := ListBuiltin()
	require.NoError(t, err)
	assert.Equal(t, []string{"extended", "standard"}, names)
}

func TestLoadBuiltin_AllValid(t *testing.T) {
	names, err := ListBuiltin()
	require.NoError(t, err)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			rb, err := LoadBuiltin(name)
			require.NoError(t, err)
			assert.Equal(t, name, rb.Name)
			assert.NotEmpty(t, rb.Description)
			assert.Equal(t, 100, rb.MaxScore(), "built-in rubrics should total 100 points")
		})
	}
}

func TestLoadBuiltin_DefaultsToStandard(t *testing.T) {
	rb, err := LoadBuiltin("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRubricName, rb.Name)
	assert.Equal(t, 30, rb.Summary.MinWords)
	assert.Equal(t, 70, rb.Summary.MaxWords)
}

func TestLoadBuiltin_Unknown(t *testing.T) {
	_, err := LoadBuiltin("nope")
	var rubricErr *RubricError
	require.ErrorAs(t, err, &rubricErr)
	assert.Equal(t, "nope", rubricErr.Name)
}

func TestParseRubric_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "name: [unterminated"},
		{"missing name", "summary: {min_words: 1, max_words: 2}"},
		{"inverted range", `
name: broken
summary: {min_words: 50, max_words: 10, weight: 15}
experience: {min_entries: 1, min_action_verbs: 1}
skills: {min_count: 1, min_keyword_matches: 1}
sections: {secondary: projects}`},
		{"negative weight", `
name: broken
metrics: {weight: -1}
summary: {min_words: 1, max_words: 2}
experience: {min_entries: 1, min_action_verbs: 1}
skills: {min_count: 1, min_keyword_matches: 1}
sections: {secondary: projects}`},
		{"unknown section", `
name: broken
summary: {min_words: 1, max_words: 2}
experience: {min_entries: 1, min_action_verbs: 1}
skills: {min_count: 1, min_keyword_matches: 1}
sections: {secondary: hobbies}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRubric([]byte(tt.yaml))
			var rubricErr *RubricError
			assert.ErrorAs(t, err, &rubricErr)
		})
	}
}

func TestLoadFile_WithVocabularyOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
name: custom
contact: {base_weight: 20}
summary: {min_words: 10, max_words: 40, weight: 20, partial_weight: 0}
experience: {min_entries: 1, min_description_chars: 10, min_action_verbs: 1, entries_weight: 10, description_weight: 10, verbs_weight: 10}
skills: {min_count: 2, min_keyword_matches: 1, keyword_weight: 20}
metrics: {weight: 10}
sections: {secondary: achievements, education_weight: 0, secondary_weight: 0}
vocabulary:
  technical_keywords: ["  Rust ", "rust", "Zig"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rb, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", rb.Name)
	assert.Equal(t, 100, rb.MaxScore())

	vocab := rb.Vocabulary.withDefaults()
	assert.Equal(t, []string{"rust", "zig"}, vocab.TechnicalKeywords)
	assert.Equal(t, DefaultVocabulary().ActionVerbs, vocab.ActionVerbs, "empty lists fall back to defaults")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var rubricErr *RubricError
	assert.ErrorAs(t, err, &rubricErr)
}
