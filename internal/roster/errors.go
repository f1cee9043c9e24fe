package roster

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// LoadMode controls how errors are handled while building a roster.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Error codes shared with the CLI.
const (
	ErrCodeGeneric   = "E001" // Generic/unknown error
	ErrCodeScanError = "E002" // Directory scan error
	ErrCodeNoFiles   = "E003" // No CUE files found
	ErrCodeCompile   = "E004" // CUE source does not compile
	ErrCodeNotFound  = "E005" // Path not found
	ErrCodeSchema    = "E006" // Roster violates the employee schema

	// Employee entry errors
	ErrCodeMissingField  = "E201" // Variant field missing (salary, hourly_rate, ...)
	ErrCodeDuplicateID   = "E202" // Two entries share an id
	ErrCodeUnknownReport = "E203" // reports references an unknown id
	ErrCodeInvalidEntry  = "E204" // Entry rejected by the employee constructors
	ErrCodeKindMismatch  = "E205" // Field not valid for the entry's kind
	ErrCodeEmpty         = "E206" // No employees declared
)

// LoadError represents an error found while loading a roster.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// fromCUEError converts a CUE error into LoadErrors, one per reported
// problem, keeping the first position of each.
func fromCUEError(code string, err error) []error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return []error{&LoadError{Code: code, Message: err.Error()}}
	}

	out := make([]error, 0, len(errs))
	for _, e := range errs {
		le := &LoadError{Code: code, Message: e.Error()}
		if positions := errors.Positions(e); len(positions) > 0 {
			le.Pos = positions[0]
		}
		out = append(out, le)
	}
	return out
}
