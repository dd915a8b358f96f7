package resource

import (
	"context"
	"iter"
	"log/slog"

	pkgerrors "github.com/JohnPlummer/jp-go-errors"
	"github.com/google/uuid"
)

// Flow adapts a single call into a cold sequence of Resource states. Each
// iteration emits Loading, invokes the call once, and finishes with Success
// when the envelope reports OK, or with an Error built from the envelope and
// its parsed error body otherwise.
//
// The sequence is restartable: ranging over it again triggers a fresh call,
// and concurrent iterations each trigger their own. A consumer that stops
// after Loading prevents the call; a cancelled context ends the sequence
// without a terminal state. Failures never escape as errors or panics.
//
// Example:
//
//	call := resource.GetJSON[User](nil, "https://api.example.com/users/1")
//	for state := range resource.Flow(ctx, call) {
//	    switch s := state.(type) {
//	    case resource.Loading[User]:
//	        showSpinner()
//	    case resource.Success[User]:
//	        render(s.Data)
//	    case resource.Error[User]:
//	        showError(s.Message)
//	    }
//	}
func Flow[T any](ctx context.Context, call Call[T], opts ...FlowOption) iter.Seq[Resource[T]] {
	config := newFlowConfig(opts)

	return func(yield func(Resource[T]) bool) {
		logger := config.Logger.With("flow_id", uuid.NewString())

		if !yield(Loading[T]{}) {
			return
		}

		// Check if the context is already done before making the call
		select {
		case <-ctx.Done():
			logger.Warn("context already done before call (expected condition)",
				"error", ctx.Err())
			return
		default:
		}

		resp, err := call(ctx)
		if ctx.Err() != nil {
			logger.Debug("context done before emitting result",
				"error", ctx.Err())
			return
		}

		if err == nil && resp.OK {
			logger.Debug("call succeeded",
				"status", resp.StatusCode)
			yield(Success[T]{Data: resp.Body})
			return
		}

		yield(newError[T](logger, resp, err))
	}
}

// newError converts a failed attempt into an Error state. The message
// prefers the parsed server detail, then the envelope message, then the call
// error text; the code is the envelope status code, 0 when none was
// received.
func newError[T any](logger *slog.Logger, resp Response[T], err error) Error[T] {
	message := resp.Message
	if message == "" && err != nil {
		message = err.Error()
	}

	apiErr := parseAPIError(logger, resp.ErrorBody)
	if apiErr != nil && apiErr.Message != "" {
		message = apiErr.Message
	}

	logger.Debug("call failed",
		"status", resp.StatusCode,
		"message", message,
		"timeout", pkgerrors.IsTimeout(err),
		"error", err)

	return Error[T]{
		Message: message,
		Code:    resp.StatusCode,
		API:     apiErr,
	}
}
