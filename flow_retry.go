package resource

import (
	"context"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// unknownError is the fallback message when no attempt produced a response.
const unknownError = "Unknown error"

// FlowWithRetry adapts a single call into a cold sequence of Resource
// states, re-attempting failed calls before giving up. Each iteration emits
// Loading once, makes up to RetryCount+1 attempts with a fixed RetryDelay
// pause between them (none after the last), and finishes with Success or
// with the Error from the final attempt.
//
// An attempt succeeds when the envelope reports OK or carries status 200 or
// 201. A negative RetryCount suppresses the call entirely and the sequence
// finishes with a generic Error. Like Flow, the sequence is cold and
// restartable, and a cancelled context ends it without a terminal state.
//
// Example:
//
//	states := resource.FlowWithRetry(ctx, call,
//	    resource.WithRetryCount(5),
//	    resource.WithRetryDelay(200*time.Millisecond),
//	)
//	for state := range states {
//	    ...
//	}
func FlowWithRetry[T any](ctx context.Context, call Call[T], opts ...FlowOption) iter.Seq[Resource[T]] {
	config := newFlowConfig(opts)

	return func(yield func(Resource[T]) bool) {
		logger := config.Logger.With("flow_id", uuid.NewString())

		if !yield(Loading[T]{}) {
			return
		}

		// Handle negative retry counts - don't make any calls
		if config.RetryCount < 0 {
			logger.Warn("negative retry count, skipping call",
				"retry_count", config.RetryCount)
			yield(Error[T]{Message: unknownError})
			return
		}

		// Check if the context is already done before attempting any calls
		select {
		case <-ctx.Done():
			logger.Warn("context already done before call (expected condition)",
				"error", ctx.Err())
			return
		default:
		}

		var (
			success  Success[T]
			lastErr  *Error[T]
			attempts int
		)

		// retry.Do counts the initial attempt, so RetryCount maps directly
		// onto WithMaxRetries.
		backoff := retry.WithMaxRetries(
			uint64(config.RetryCount), // #nosec G115 - negative counts handled above
			retry.BackoffFunc(func() (time.Duration, bool) {
				return config.RetryDelay, false
			}),
		)

		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			attempts++

			// Check if the context is done before each attempt
			select {
			case <-ctx.Done():
				logger.Warn("context done before retry attempt (expected condition)",
					"attempt", attempts,
					"error", ctx.Err())
				return ctx.Err()
			default:
			}

			resp, callErr := call(ctx)
			if callErr == nil && (resp.OK || resp.StatusCode == 200 || resp.StatusCode == 201) {
				if attempts > 1 {
					logger.Info("call succeeded after retry",
						"attempts", attempts)
				}
				success = Success[T]{Data: resp.Body}
				return nil
			}

			attemptErr := newError[T](logger, resp, callErr)
			lastErr = &attemptErr

			logger.Debug("retrying call after delay",
				"attempt", attempts,
				"status", resp.StatusCode)

			return retry.RetryableError(attemptErr)
		})

		if ctx.Err() != nil {
			logger.Debug("context done before emitting result",
				"error", ctx.Err())
			return
		}

		if err != nil {
			logger.Warn("call failed after retries",
				"attempts", attempts,
				"error", err)
			if lastErr == nil {
				yield(Error[T]{Message: unknownError})
				return
			}
			yield(*lastErr)
			return
		}

		yield(success)
	}
}
