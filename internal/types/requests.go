package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// ScoreRequest is the body of POST /v1/score.
type ScoreRequest struct {
	Rubric string          `json:"rubric,omitempty" validate:"omitempty,max=64"`
	Record json.RawMessage `json:"record" validate:"required"`
}

// ScoreResponse is returned by POST /v1/score.
type ScoreResponse struct {
	Rubric string      `json:"rubric"`
	Band   string      `json:"band"`
	Result ScoreResult `json:"result"`
}

// RubricInfo describes an available rubric.
type RubricInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxScore    int    `json:"maxScore"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
