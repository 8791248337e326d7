package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("at least one of topic or video url must be provided")
	ErrUpstreamUnavailable = errors.New("upstream backend unavailable")
	ErrRateLimited         = errors.New("upstream backend rate limited")
	ErrNoContent           = errors.New("upstream backend returned no usable content")
	ErrSynthesisEmpty      = errors.New("no extractable content to synthesize")
	ErrEmptyScript         = errors.New("dialogue generation produced no lines")
	ErrFormatMismatch      = errors.New("audio segments disagree on pcm format")
	ErrRender              = errors.New("audio rendering failed")
)

// Transient reports whether an error is worth a bounded retry. NoContent is
// a definitive answer from the backend, never retried.
func Transient(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrRateLimited)
}

// StageError tags a failure with the run state it occurred in. Every failed
// run surfaces exactly one StageError as its terminal value.
type StageError struct {
	Stage RunState
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func NewStageError(stage RunState, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
