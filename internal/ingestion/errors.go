package ingestion

import "fmt"

// ParseError represents a record that could not be read, validated or decoded
type ParseError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	src := e.Source
	if src == "" {
		src = "record"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", src, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", src, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
