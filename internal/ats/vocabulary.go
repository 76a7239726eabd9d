package ats

import (
	"slices"
	"strings"
)

// Vocabulary holds the closed word lists the rules match against.
// All matching is case-insensitive substring containment.
type Vocabulary struct {
	ActionVerbs       []string `yaml:"action_verbs,omitempty"`
	TechnicalKeywords []string `yaml:"technical_keywords,omitempty"`
	NetworkLabels     []string `yaml:"network_labels,omitempty"`
	NetworkHosts      []string `yaml:"network_hosts,omitempty"`
}

var defaultActionVerbs = []string{
	"led", "managed", "developed", "architected", "designed", "implemented",
	"optimized", "increased", "decreased", "saved", "scaled", "initiated",
	"transformed", "delivered", "automated", "streamlined", "coordinated",
	"mentored", "collaborated", "integrated", "built", "resolved", "impacted",
}

var defaultTechnicalKeywords = []string{
	"react", "typescript", "javascript", "node", "python", "sql", "aws", "docker",
	"kubernetes", "agile", "scrum", "ci/cd", "api", "backend", "frontend", "fullstack",
	"git", "unit testing", "rest", "graphql", "cloud", "database", "microservices",
}

// DefaultVocabulary returns a fresh copy of the built-in word lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		ActionVerbs:       slices.Clone(defaultActionVerbs),
		TechnicalKeywords: slices.Clone(defaultTechnicalKeywords),
		NetworkLabels:     []string{"linkedin"},
		NetworkHosts:      []string{"linkedin.com"},
	}
}

// withDefaults fills empty lists from DefaultVocabulary and lowercases every term.
// The result shares no backing arrays with v.
func (v Vocabulary) withDefaults() Vocabulary {
	def := DefaultVocabulary()
	return Vocabulary{
		ActionVerbs:       normalizeTerms(v.ActionVerbs, def.ActionVerbs),
		TechnicalKeywords: normalizeTerms(v.TechnicalKeywords, def.TechnicalKeywords),
		NetworkLabels:     normalizeTerms(v.NetworkLabels, def.NetworkLabels),
		NetworkHosts:      normalizeTerms(v.NetworkHosts, def.NetworkHosts),
	}
}

func normalizeTerms(terms, fallback []string) []string {
	if len(terms) == 0 {
		terms = fallback
	}
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

// countContained returns how many distinct terms occur in textLower.
func countContained(textLower string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(textLower, term) {
			n++
		}
	}
	return n
}

// containsAny reports whether any term occurs in textLower.
func containsAny(textLower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(textLower, term) {
			return true
		}
	}
	return false
}
