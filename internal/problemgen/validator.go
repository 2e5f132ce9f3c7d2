package problemgen

import (
	"fmt"
	"slices"
)

// MaxTextLength is the longest question text accepted from any source.
const MaxTextLength = 500

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the check that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Validate checks the structural invariants every question must satisfy
// before it is shown. Local generators always pass; remote story problems
// are checked before they are accepted.
func Validate(q Question) *ValidationError {
	if q.Text == "" {
		return &ValidationError{Validator: "structural", Message: "question text is empty"}
	}
	if len(q.Text) > MaxTextLength {
		return &ValidationError{
			Validator: "structural",
			Message:   fmt.Sprintf("question text exceeds %d characters", MaxTextLength),
		}
	}
	if q.Type.Numeric() && !q.Answer.IsNumber() {
		return &ValidationError{
			Validator: "answer-format",
			Message:   fmt.Sprintf("%s question needs a numeric answer", q.Type),
		}
	}
	if len(q.Options) == 0 {
		return nil
	}
	if !slices.Contains(q.Options, q.Answer.String()) {
		return &ValidationError{
			Validator: "answer-format",
			Message:   fmt.Sprintf("answer %q is not among the options", q.Answer.String()),
		}
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o] {
			return &ValidationError{
				Validator: "answer-format",
				Message:   fmt.Sprintf("duplicate option %q", o),
			}
		}
		seen[o] = true
	}
	return nil
}
