// Package resource models the lifecycle of a single asynchronous call as a
// cold, restartable stream of typed states: Loading, then Success or Error.
// Failures are carried as values rather than propagated, server error bodies
// are decoded into a structured APIError when they match a known shape, and
// an optional retry variant re-attempts the call a fixed number of times.
package resource

import "fmt"

// Resource is the state of one asynchronous request for a value of type T.
// Exactly one concrete state holds at a time: Loading while the call is in
// flight, Success or Error once it finished, or Reset when no request is
// active.
//
// The interface is sealed; only the state types in this package implement it.
// Consumers branch with a type switch:
//
//	switch s := state.(type) {
//	case resource.Loading[User]:
//	    showSpinner(s.Data)
//	case resource.Success[User]:
//	    render(s.Data)
//	case resource.Error[User]:
//	    showError(s.Message)
//	case resource.Reset[User]:
//	    showIdle()
//	}
type Resource[T any] interface {
	resource()
}

// Loading indicates the call is in flight. Data optionally carries a prior
// value so consumers can keep showing stale content while refreshing.
type Loading[T any] struct {
	Data *T
}

// Success indicates the call completed successfully. Data is the response
// body, or nil when the call returned none.
type Success[T any] struct {
	Data *T
}

// Error indicates the call failed. All fields are optional: Message is a
// human-readable description, Code is the HTTP status (0 when none was
// received), Data optionally carries a prior value, and API holds the
// structured server detail when the error body matched a known shape.
type Error[T any] struct {
	Message string
	Code    int
	Data    *T
	API     *APIError
}

// Reset indicates no request is active. It is the initial state of a holder
// and distinct from Loading. Data optionally carries the last known value.
type Reset[T any] struct {
	Data *T
}

func (Loading[T]) resource() {}
func (Success[T]) resource() {}
func (Error[T]) resource()   {}
func (Reset[T]) resource()   {}

// Error implements the error interface so an Error state can travel through
// standard error plumbing.
func (e Error[T]) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != 0 {
		return fmt.Sprintf("request failed with status %d", e.Code)
	}
	return "request failed"
}

// DataOf returns whichever payload the current state carries, or nil. It
// lets consumers render the last known value regardless of which state is
// active.
func DataOf[T any](r Resource[T]) *T {
	switch s := r.(type) {
	case Loading[T]:
		return s.Data
	case Success[T]:
		return s.Data
	case Error[T]:
		return s.Data
	case Reset[T]:
		return s.Data
	default:
		return nil
	}
}

var (
	_ Resource[any] = Loading[any]{}
	_ Resource[any] = Success[any]{}
	_ Resource[any] = Error[any]{}
	_ Resource[any] = Reset[any]{}
	_ error         = Error[any]{}
)
