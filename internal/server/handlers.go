package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string               `json:"error"`
	RequestID string               `json:"request_id,omitempty"`
	Details   []schemas.FieldError `json:"details,omitempty"`
}

// handleScore scores the record in the request body
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req types.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			err = &ErrValidation{Field: "body", Message: err.Error()}
		}
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, toValidationError(err))
		return
	}

	name := req.Rubric
	if name == "" {
		name = s.defaultRubric
	}
	scorer, ok := s.scorers[name]
	if !ok {
		s.fail(w, r, &ErrUnknownRubric{Name: name})
		return
	}

	rec, err := ingestion.ParseRecord(req.Record)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result := scorer.Score(rec)
	s.log.Debug("record scored",
		zap.String(logger.FieldRequestID, RequestID(r.Context())),
		zap.String(logger.FieldRubric, name),
		zap.Int(logger.FieldScore, result.Score))

	s.jsonResponse(w, http.StatusOK, types.ScoreResponse{
		Rubric: name,
		Band:   observability.Band(result.Score),
		Result: result,
	})
}

// handleRubrics lists the rubrics this server scores with
func (s *Server) handleRubrics(w http.ResponseWriter, _ *http.Request) {
	infos := make([]types.RubricInfo, 0, len(s.scorers))
	for _, name := range s.rubricNames() {
		sc := s.scorers[name]
		infos = append(infos, types.RubricInfo{
			Name:        name,
			Description: sc.Description(),
			MaxScore:    sc.MaxScore(),
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"default": s.defaultRubric,
		"rubrics": infos,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// toValidationError reports the first failing field of a validator error.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: "failed on " + fe.Tag()}
	}
	return &ErrValidation{Message: err.Error()}
}

// fail maps err to a status and writes it. Schema violations carry their
// field errors as details.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	message := err.Error()

	var details []schemas.FieldError
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		details = schemaErr.Errors
		message = "record does not match schema"
	}
	s.errorResponse(w, r, status, message, details)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, details []schemas.FieldError) {
	s.jsonResponse(w, status, ErrorResponse{
		Error:     message,
		RequestID: RequestID(r.Context()),
		Details:   details,
	})
}
