package wizard

import (
	"errors"
	"fmt"

	"bizhub/models"
)

var (
	ErrSessionNotFound = errors.New("wizard session not found or expired")
	ErrStepMismatch    = errors.New("wizard session is on a different step")
	ErrNotSkippable    = errors.New("this step cannot be skipped")
	ErrAtFirstStep     = errors.New("already at the first step")
	ErrNotReady        = errors.New("wizard session is not ready for submission")
)

// StepError reports invalid input for the current step.
type StepError struct {
	Step    models.WizardStep
	Field   string
	Message string
}

func (e *StepError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Step, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

func stepError(step models.WizardStep, field, format string, args ...any) error {
	return &StepError{Step: step, Field: field, Message: fmt.Sprintf(format, args...)}
}

// FetchError wraps a failed collaborator fetch. The session stays on its step.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
