package types

// ScoreResult is the derived, immutable output of the ATS scorer.
// Checks are ordered; consumers must render them top to bottom.
type ScoreResult struct {
	Score  int     `json:"score"`
	Checks []Check `json:"checks"`
}

// Check is the explanation for a single rule
type Check struct {
	Label      string `json:"label"`
	Passed     bool   `json:"passed"`
	Suggestion string `json:"suggestion"`
	Points     int    `json:"points"`
	MaxPoints  int    `json:"maxPoints"`
}

// PassedCount returns the number of passed checks.
func (r ScoreResult) PassedCount() int {
	n := 0
	for _, c := range r.Checks {
		if c.Passed {
			n++
		}
	}
	return n
}

// Failed returns the checks that did not pass, in evaluation order.
func (r ScoreResult) Failed() []Check {
	failed := make([]Check, 0, len(r.Checks))
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}
