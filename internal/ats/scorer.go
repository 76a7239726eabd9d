// Package ats grades a resume record against a fixed rubric approximating how
// applicant tracking systems filter resumes.
//
// Scoring is pure and total: any record, including a nil or empty one, yields
// a result with one check per rule in a fixed order. A Scorer holds no mutable
// state and is safe for concurrent use.
package ats

import (
	"github.com/jonathan/resume-ats/internal/types"
)

// MaxScore is the upper clamp applied to every total.
const MaxScore = 100

// Scorer evaluates records against one rubric.
type Scorer struct {
	rubric Rubric
	rules  []Rule
}

// New builds a Scorer from a validated rubric.
func New(rubric *Rubric) (*Scorer, error) {
	if rubric == nil {
		return nil, &RubricError{Message: "rubric is nil"}
	}
	if err := rubric.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{rubric: *rubric, rules: Rules(rubric)}, nil
}

// NewDefault builds a Scorer for the built-in default rubric.
func NewDefault() (*Scorer, error) {
	rubric, err := LoadBuiltin(DefaultRubricName)
	if err != nil {
		return nil, err
	}
	return New(rubric)
}

// Rules returns the ordered rule list for a rubric. The rules get a
// normalized copy of the vocabulary; lists missing from the rubric fall back
// to DefaultVocabulary.
func Rules(rb *Rubric) []Rule {
	vocab := rb.Vocabulary.withDefaults()
	return []Rule{
		ContactRule(rb.Contact, vocab),
		SummaryRule(rb.Summary),
		ExperienceRule(rb.Experience, vocab),
		SkillsRule(rb.Skills, vocab),
		MetricsRule(rb.Metrics),
		SectionsRule(rb.Sections),
	}
}

// Rubric returns the rubric name.
func (s *Scorer) Rubric() string {
	return s.rubric.Name
}

// Description returns the rubric description.
func (s *Scorer) Description() string {
	return s.rubric.Description
}

// MaxScore returns the attainable total before clamping.
func (s *Scorer) MaxScore() int {
	return s.rubric.MaxScore()
}

// Score grades rec. A nil record is scored as the empty record.
func (s *Scorer) Score(rec *types.ResumeRecord) types.ScoreResult {
	if rec == nil {
		rec = types.EmptyRecord()
	}

	result := types.ScoreResult{Checks: make([]types.Check, 0, len(s.rules))}
	total := 0
	for _, rule := range s.rules {
		out := rule.Evaluate(rec)
		total += out.Points
		result.Checks = append(result.Checks, types.Check{
			Label:      rule.Label,
			Passed:     out.Passed,
			Suggestion: out.Suggestion,
			Points:     out.Points,
			MaxPoints:  out.MaxPoints,
		})
	}
	result.Score = clamp(total)
	return result
}

func clamp(total int) int {
	return max(0, min(total, MaxScore))
}
