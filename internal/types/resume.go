// Package types provides type definitions for structured data used throughout the resume-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeRecord is the structured resume maintained by the editor or produced by the AI importer.
// Absent fields decode to their zero value and are treated as empty by the scorer.
type ResumeRecord struct {
	PersonalDetails PersonalDetails `json:"personalDetails"`
	Summary         string          `json:"summary"`
	Experience      []Experience    `json:"experience"`
	Education       []Education     `json:"education"`
	Skills          []string        `json:"skills"`
	Certifications  []string        `json:"certifications"`
	Projects        []Project       `json:"projects"`
	Achievements    []string        `json:"achievements"`
}

// PersonalDetails holds contact information and external profile links
type PersonalDetails struct {
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Location  string         `json:"location"`
	Links     []ExternalLink `json:"links"`
}

// ExternalLink is a labeled URL such as a LinkedIn or GitHub profile
type ExternalLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Experience represents a single role
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education represents a single degree or program
type Education struct {
	ID             string `json:"id"`
	School         string `json:"school"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa,omitempty"`
}

// Project represents a side or portfolio project
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

// EmptyRecord returns a record with every string empty and every collection empty (not nil).
func EmptyRecord() *ResumeRecord {
	return &ResumeRecord{
		PersonalDetails: PersonalDetails{Links: []ExternalLink{}},
		Experience:      []Experience{},
		Education:       []Education{},
		Skills:          []string{},
		Certifications:  []string{},
		Projects:        []Project{},
		Achievements:    []string{},
	}
}

// FullName joins first and last name, skipping empty parts.
func (p PersonalDetails) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
