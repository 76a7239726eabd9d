package ats

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/types"
)

// Check labels, in evaluation order.
const (
	LabelContact    = "Contact & Essential Links"
	LabelSummary    = "Professional Summary"
	LabelExperience = "Experience Impact"
	LabelSkills     = "Skills Strategy"
	LabelMetrics    = "Quantifiable Results"
	LabelSections   = "Section Diversity"
)

// quantifiedPattern matches a number followed by %, +, k or m, or the words million/thousand.
var quantifiedPattern = regexp.MustCompile(`(?i)([0-9]+%|[0-9]+\+|[0-9]+k|[0-9]+m|million|thousand)`)

// Outcome is what a single rule awards for a record.
type Outcome struct {
	Points     int
	MaxPoints  int
	Passed     bool
	Suggestion string
}

// Rule is one independently evaluated criterion. Evaluate must be pure and
// must never see a nil record.
type Rule struct {
	Label    string
	Evaluate func(rec *types.ResumeRecord) Outcome
}

// award returns weight when cond holds.
func award(cond bool, weight int) int {
	if cond {
		return weight
	}
	return 0
}

// ContactRule checks email, phone and a professional network link.
func ContactRule(rb ContactRubric, vocab Vocabulary) Rule {
	return Rule{
		Label: LabelContact,
		Evaluate: func(rec *types.ResumeRecord) Outcome {
			pd := rec.PersonalDetails
			hasEmail := pd.Email != ""
			hasPhone := pd.Phone != ""
			hasNetwork := hasNetworkLink(pd.Links, vocab)

			out := Outcome{
				Points:    award(hasEmail && hasPhone, rb.BaseWeight) + award(hasNetwork, rb.LinkWeight),
				MaxPoints: rb.BaseWeight + rb.LinkWeight,
				Passed:    hasEmail && hasPhone && hasNetwork,
			}
			switch {
			case !hasEmail || !hasPhone:
				out.Suggestion = "Add both email and phone number."
			case !hasNetwork:
				out.Suggestion = "Add a LinkedIn profile link."
			default:
				out.Suggestion = "Contact info is solid."
			}
			return out
		},
	}
}

func hasNetworkLink(links []types.ExternalLink, vocab Vocabulary) bool {
	for _, l := range links {
		if containsAny(strings.ToLower(l.Label), vocab.NetworkLabels) ||
			containsAny(strings.ToLower(l.URL), vocab.NetworkHosts) {
			return true
		}
	}
	return false
}

// SummaryRule checks that the summary word count falls in the accepted range.
func SummaryRule(rb SummaryRubric) Rule {
	return Rule{
		Label: LabelSummary,
		Evaluate: func(rec *types.ResumeRecord) Outcome {
			words := len(strings.Fields(rec.Summary))
			inRange := words >= rb.MinWords && words <= rb.MaxWords && words > 0

			out := Outcome{MaxPoints: rb.Weight, Passed: inRange}
			switch {
			case words == 0:
				out.Suggestion = "Add a summary to introduce yourself."
			case inRange:
				out.Points = rb.Weight
				out.Suggestion = "Well-balanced summary."
			default:
				out.Points = rb.PartialWeight
				out.Suggestion = fmt.Sprintf("Summary should be %d-%d words for better ATS reading.", rb.MinWords, rb.MaxWords)
			}
			return out
		},
	}
}

// ExperienceRule checks role count, description depth and action verb usage.
func ExperienceRule(rb ExpRubric, vocab Vocabulary) Rule {
	return Rule{
		Label: LabelExperience,
		Evaluate: func(rec *types.ResumeRecord) Outcome {
			enoughEntries := len(rec.Experience) >= rb.MinEntries
			detailed := allDescriptionsLonger(rec.Experience, rb.MinDescriptionChars)
			verbs := countContained(descriptionText(rec.Experience), vocab.ActionVerbs)
			hasVerbs := verbs >= rb.MinActionVerbs

			out := Outcome{
				Points: award(enoughEntries, rb.EntriesWeight) +
					award(detailed, rb.DescriptionWeight) +
					award(hasVerbs, rb.VerbsWeight),
				MaxPoints: rb.EntriesWeight + rb.DescriptionWeight + rb.VerbsWeight,
				Passed:    enoughEntries && detailed && hasVerbs,
			}
			switch {
			case !enoughEntries:
				out.Suggestion = fmt.Sprintf("List at least %d relevant roles.", rb.MinEntries)
			case !hasVerbs:
				out.Suggestion = "Use more action verbs (e.g., 'Optimized', 'Architected')."
			case !detailed:
				out.Suggestion = fmt.Sprintf("Describe each role in more than %d characters.", rb.MinDescriptionChars)
			default:
				out.Suggestion = "Good experience descriptions."
			}
			return out
		},
	}
}

// allDescriptionsLonger requires at least one entry; an empty list does not qualify.
func allDescriptionsLonger(entries []types.Experience, minChars int) bool {
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if utf8.RuneCountInString(e.Description) <= minChars {
			return false
		}
	}
	return true
}

// descriptionText joins every description, lowercased, with single spaces.
func descriptionText(entries []types.Experience) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = strings.ToLower(e.Description)
	}
	return strings.Join(parts, " ")
}

// SkillsRule checks skill count and technical keyword coverage.
func SkillsRule(rb SkillsRubric, vocab Vocabulary) Rule {
	return Rule{
		Label: LabelSkills,
		Evaluate: func(rec *types.ResumeRecord) Outcome {
			enough := len(rec.Skills) >= rb.MinCount
			relevant := 0
			for _, s := range rec.Skills {
				if containsAny(strings.ToLower(s), vocab.TechnicalKeywords) {
					relevant++
				}
			}
			hasRelevant := relevant >= rb.MinKeywordMatches

			out := Outcome{
				Points: award(enough, rb.CountWeight) +
					award(hasRelevant, rb.KeywordWeight) +
					award(enough && hasRelevant, rb.CombinedWeight),
				MaxPoints: rb.CountWeight + rb.KeywordWeight + rb.CombinedWeight,
				Passed:    enough && hasRelevant,
			}
			switch {
			case !enough:
				out.Suggestion = fmt.Sprintf("Include at least %d-%d specific skills.", rb.MinCount, rb.MinCount+2)
			case !hasRelevant:
				out.Suggestion = "Add more core technical keywords (e.g., specific languages or tools)."
			default:
				out.Suggestion = "Skills section is well-optimized."
			}
			return out
		},
	}
}

// MetricsRule checks for quantified impact anywhere in the experience descriptions.
func MetricsRule(rb MetricsRubric) Rule {
	return Rule{
		Label: LabelMetrics,
		Evaluate: func(rec *types.ResumeRecord) Outcome {
			hasNumbers := quantifiedPattern.MatchString(descriptionText(rec.Experience))
			out := Outcome{
				Points:    award(hasNumbers, rb.Weight),
				MaxPoints: rb.Weight,
				Passed:    hasNumbers,
			}
			if hasNumbers {
				out.Suggestion = "Great use of metrics!"
			} else {
				out.Suggestion = "Use numbers (%, $, #) to objectively prove your impact."
			}
			return out
		},
	}
}

// SectionsRule checks that education and the configured secondary section are present.
func SectionsRule(rb SectionsRubric) Rule {
	return Rule{
		Label: LabelSections,
		Evaluate: func(rec *types.ResumeRecord) Outcome {
			hasEdu := len(rec.Education) > 0
			hasSecondary := secondaryCount(rec, rb.Secondary) > 0

			out := Outcome{
				Points:    award(hasEdu, rb.EducationWeight) + award(hasSecondary, rb.SecondaryWeight),
				MaxPoints: rb.EducationWeight + rb.SecondaryWeight,
				Passed:    hasEdu && hasSecondary,
			}
			switch {
			case !hasEdu:
				out.Suggestion = "Add your education."
			case !hasSecondary:
				out.Suggestion = secondaryHint(rb.Secondary)
			default:
				out.Suggestion = "All key sections present."
			}
			return out
		},
	}
}

func secondaryCount(rec *types.ResumeRecord, section string) int {
	switch section {
	case SectionCertifications:
		return len(rec.Certifications)
	case SectionAchievements:
		return len(rec.Achievements)
	default:
		return len(rec.Projects)
	}
}

func secondaryHint(section string) string {
	switch section {
	case SectionCertifications:
		return "Add certifications to back up your skills."
	case SectionAchievements:
		return "Add achievements to highlight recognition."
	default:
		return "Add projects to show practical application."
	}
}
