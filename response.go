package resource

import "context"

// Response is the envelope a Call returns for one attempt. OK carries the
// client's own verdict on the attempt; StatusCode, ErrorBody and Message
// carry what is needed to build an Error state when the attempt failed.
type Response[T any] struct {
	// OK reports whether the client considers the call successful.
	OK bool

	// StatusCode is the HTTP status code, or 0 when none was received.
	StatusCode int

	// Body is the decoded response body on success, nil when the call
	// returned none.
	Body *T

	// ErrorBody is the raw body of a failed call, kept for error parsing.
	ErrorBody []byte

	// Message is a transport-level description of the outcome.
	Message string
}

// Call performs one attempt of the underlying operation. Returning a non-nil
// error is equivalent to returning an unsuccessful Response with no envelope:
// the flow adapters absorb both into an Error state and never propagate
// either. The context controls timeouts and cancellation for the attempt.
type Call[T any] func(ctx context.Context) (Response[T], error)
