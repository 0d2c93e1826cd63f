package api

const genericErrorMessage = "an error occurred"

// Result is the tri-state outcome of an asynchronous operation: still
// loading, resolved with a value, or failed with a user-presentable
// message. Every gateway operation returns one; no error escapes the
// package boundary any other way.
type Result[T any] struct {
	state resultState
	value T
	msg   string
}

type resultState int

const (
	resultLoading resultState = iota
	resultSuccess
	resultError
)

// Pending returns a Result that is still awaiting resolution.
func Pending[T any]() Result[T] {
	return Result[T]{state: resultLoading}
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{state: resultSuccess, value: value}
}

// Err wraps a failure message. An empty message is replaced with a
// generic fallback so the UI never renders a blank error.
func Err[T any](msg string) Result[T] {
	if msg == "" {
		msg = genericErrorMessage
	}
	return Result[T]{state: resultError, msg: msg}
}

// Loading reports whether the result is still pending.
func (r Result[T]) Loading() bool { return r.state == resultLoading }

// OK reports whether the result resolved successfully.
func (r Result[T]) OK() bool { return r.state == resultSuccess }

// Failed reports whether the result resolved with an error.
func (r Result[T]) Failed() bool { return r.state == resultError }

// Value returns the success value; the zero value unless OK.
func (r Result[T]) Value() T { return r.value }

// Message returns the failure message; empty unless Failed.
func (r Result[T]) Message() string { return r.msg }
