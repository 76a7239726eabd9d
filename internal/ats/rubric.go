package ats

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultRubricName is the rubric used when none is requested.
const DefaultRubricName = "standard"

// Secondary sections that can satisfy the diversity rule.
const (
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionAchievements   = "achievements"
)

// Rubric is the weighting table and thresholds for every rule.
type Rubric struct {
	Name        string         `yaml:"name" validate:"required"`
	Description string         `yaml:"description"`
	Contact     ContactRubric  `yaml:"contact"`
	Summary     SummaryRubric  `yaml:"summary"`
	Experience  ExpRubric      `yaml:"experience"`
	Skills      SkillsRubric   `yaml:"skills"`
	Metrics     MetricsRubric  `yaml:"metrics"`
	Sections    SectionsRubric `yaml:"sections"`
	Vocabulary  Vocabulary     `yaml:"vocabulary,omitempty"`
}

// ContactRubric weights the contact rule.
type ContactRubric struct {
	BaseWeight int `yaml:"base_weight" validate:"gte=0"`
	LinkWeight int `yaml:"link_weight" validate:"gte=0"`
}

// SummaryRubric bounds are an inclusive word-count range.
type SummaryRubric struct {
	MinWords      int `yaml:"min_words" validate:"gte=0"`
	MaxWords      int `yaml:"max_words" validate:"gtefield=MinWords"`
	Weight        int `yaml:"weight" validate:"gte=0"`
	PartialWeight int `yaml:"partial_weight" validate:"gte=0,ltefield=Weight"`
}

// ExpRubric weights the three experience sub-conditions.
type ExpRubric struct {
	MinEntries          int `yaml:"min_entries" validate:"gte=1"`
	MinDescriptionChars int `yaml:"min_description_chars" validate:"gte=0"`
	MinActionVerbs      int `yaml:"min_action_verbs" validate:"gte=1"`
	EntriesWeight       int `yaml:"entries_weight" validate:"gte=0"`
	DescriptionWeight   int `yaml:"description_weight" validate:"gte=0"`
	VerbsWeight         int `yaml:"verbs_weight" validate:"gte=0"`
}

// SkillsRubric weights skill count and keyword relevance. CombinedWeight is
// awarded only when both thresholds are met.
type SkillsRubric struct {
	MinCount          int `yaml:"min_count" validate:"gte=1"`
	MinKeywordMatches int `yaml:"min_keyword_matches" validate:"gte=1"`
	CountWeight       int `yaml:"count_weight" validate:"gte=0"`
	KeywordWeight     int `yaml:"keyword_weight" validate:"gte=0"`
	CombinedWeight    int `yaml:"combined_weight" validate:"gte=0"`
}

// MetricsRubric weights the quantifiable-results rule.
type MetricsRubric struct {
	Weight int `yaml:"weight" validate:"gte=0"`
}

// SectionsRubric weights section presence.
type SectionsRubric struct {
	EducationWeight int    `yaml:"education_weight" validate:"gte=0"`
	Secondary       string `yaml:"secondary" validate:"oneof=projects certifications achievements"`
	SecondaryWeight int    `yaml:"secondary_weight" validate:"gte=0"`
}

// RubricError reports an unknown, unreadable or invalid rubric.
type RubricError struct {
	Name    string
	Message string
	Cause   error
}

func (e *RubricError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rubric %q: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("rubric %q: %s", e.Name, e.Message)
}

func (e *RubricError) Unwrap() error {
	return e.Cause
}

// Validate checks weights and thresholds.
func (r *Rubric) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return &RubricError{Name: r.Name, Message: "invalid rubric", Cause: err}
	}
	return nil
}

// MaxScore is the sum of every attainable contribution before clamping.
func (r *Rubric) MaxScore() int {
	return r.Contact.BaseWeight + r.Contact.LinkWeight +
		r.Summary.Weight +
		r.Experience.EntriesWeight + r.Experience.DescriptionWeight + r.Experience.VerbsWeight +
		r.Skills.CountWeight + r.Skills.KeywordWeight + r.Skills.CombinedWeight +
		r.Metrics.Weight +
		r.Sections.EducationWeight + r.Sections.SecondaryWeight
}

// ParseRubric decodes and validates a YAML rubric.
func ParseRubric(data []byte) (*Rubric, error) {
	var r Rubric
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, &RubricError{Message: "parse yaml", Cause: err}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadBuiltin loads an embedded rubric by name.
func LoadBuiltin(name string) (*Rubric, error) {
	if name == "" {
		name = DefaultRubricName
	}
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, &RubricError{Name: name, Message: "unknown rubric", Cause: err}
	}
	return ParseRubric(data)
}

// LoadFile loads a rubric from a YAML file on disk.
func LoadFile(path string) (*Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RubricError{Name: path, Message: "read file", Cause: err}
	}
	return ParseRubric(data)
}

// ListBuiltin returns the sorted names of all embedded rubrics.
func ListBuiltin() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n := e.Name(); strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}
