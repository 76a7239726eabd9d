// Package schemas embeds the JSON Schemas for the documents the tool reads and writes.
package schemas

import _ "embed"

// ResumeRecord is the JSON Schema for an input resume record.
//
//go:embed resume_record.schema.json
var ResumeRecord string

// ScoreResult is the JSON Schema for a scorer result.
//
//go:embed score_result.schema.json
var ScoreResult string
