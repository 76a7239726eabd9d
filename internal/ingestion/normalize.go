package ingestion

import (
	"github.com/google/uuid"

	"github.com/jonathan/resume-ats/internal/types"
)

// Normalize replaces nil collections with empty ones and assigns ids to
// entries that lack them. Content the scorer reads is left untouched.
func Normalize(rec *types.ResumeRecord) {
	if rec == nil {
		return
	}

	if rec.PersonalDetails.Links == nil {
		rec.PersonalDetails.Links = []types.ExternalLink{}
	}
	if rec.Experience == nil {
		rec.Experience = []types.Experience{}
	}
	if rec.Education == nil {
		rec.Education = []types.Education{}
	}
	if rec.Skills == nil {
		rec.Skills = []string{}
	}
	if rec.Certifications == nil {
		rec.Certifications = []string{}
	}
	if rec.Projects == nil {
		rec.Projects = []types.Project{}
	}
	if rec.Achievements == nil {
		rec.Achievements = []string{}
	}

	for i := range rec.Experience {
		if rec.Experience[i].ID == "" {
			rec.Experience[i].ID = uuid.NewString()
		}
	}
	for i := range rec.Education {
		if rec.Education[i].ID == "" {
			rec.Education[i].ID = uuid.NewString()
		}
	}
	for i := range rec.Projects {
		if rec.Projects[i].ID == "" {
			rec.Projects[i].ID = uuid.NewString()
		}
	}
}
