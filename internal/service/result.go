package service

import (
	"errors"

	"github.com/raphaelgruber/astroname/internal/llm"
)

// ErrContent means the generated text could not be parsed into the requested schema.
var ErrContent = errors.New("unparsable generated content")

// Failure stages, as logged and reported in metrics.
const (
	StageTransport = "transport"
	StageStatus    = "status"
	StageEnvelope  = "envelope"
	StageContent   = "content"
	StageUnknown   = "unknown"
)

// Result carries either a value or the reason it could not be produced.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failure.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Get returns the value and the failure reason.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// OrElse returns the value, or fallback(err) when the result is a failure.
func (r Result[T]) OrElse(fallback func(error) T) T {
	if r.err != nil {
		return fallback(r.err)
	}
	return r.value
}

// Then feeds a successful value into next; failures pass through unchanged.
func Then[T, U any](r Result[T], next func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return next(r.value)
}

// Stage classifies a failure into one of the documented error kinds.
func Stage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrContent):
		return StageContent
	case errors.Is(err, llm.ErrEnvelope):
		return StageEnvelope
	case errors.Is(err, llm.ErrStatus):
		return StageStatus
	case errors.Is(err, llm.ErrTransport):
		return StageTransport
	default:
		return StageUnknown
	}
}
