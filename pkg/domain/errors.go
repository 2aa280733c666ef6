package domain

import (
	"errors"
	"fmt"
)

var ErrEmptyResponse = errors.New("empty response from model")

// Stage identifies which collaborator a pipeline failure came from.
type Stage string

const (
	StageUnknown   Stage = "unknown"
	StageInference Stage = "inference"
	StageStorage   Stage = "storage"
	StageTransport Stage = "transport"
)

type PipelineError struct {
	Stage Stage
	Op    string
	Err   error
}

func NewPipelineError(stage Stage, op string, err error) *PipelineError {
	return &PipelineError{Stage: stage, Op: op, Err: err}
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Op, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func StageOf(err error) Stage {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return StageUnknown
}

// Retryable reports whether the failed stage can be attempted again without
// duplicating user visible output.
func (s Stage) Retryable() bool {
	return s == StageInference || s == StageStorage
}
