package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	pkgerrors "github.com/JohnPlummer/jp-go-errors"
)

// HTTPCall adapts an HTTP request into a Call. build constructs the request
// and runs once per attempt, so retried calls never reuse a consumed body.
// 2xx responses decode their JSON body into T; other statuses produce an
// unsuccessful envelope carrying the raw body for error parsing. Transport
// timeouts are normalized so callers can detect them with
// jp-go-errors.IsTimeout.
//
// Example:
//
//	call := resource.HTTPCall[Order](client, func(ctx context.Context) (*http.Request, error) {
//	    return http.NewRequestWithContext(ctx, http.MethodPost, url, body())
//	})
//	for state := range resource.FlowWithRetry(ctx, call) {
//	    ...
//	}
func HTTPCall[T any](client *http.Client, build func(ctx context.Context) (*http.Request, error)) Call[T] {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context) (Response[T], error) {
		req, err := build(ctx)
		if err != nil {
			return Response[T]{}, fmt.Errorf("building request: %w", err)
		}

		start := time.Now()
		resp, err := client.Do(req.WithContext(ctx))
		if err != nil {
			if isTimeout(err) {
				return Response[T]{}, pkgerrors.NewTimeoutError("request timed out", req.URL.String(), time.Since(start))
			}
			return Response[T]{}, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Response[T]{}, fmt.Errorf("reading response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return Response[T]{
				StatusCode: resp.StatusCode,
				ErrorBody:  body,
				Message:    http.StatusText(resp.StatusCode),
			}, nil
		}

		out := Response[T]{
			OK:         true,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}

		if len(body) > 0 {
			var decoded T
			if err := json.Unmarshal(body, &decoded); err != nil {
				return Response[T]{}, fmt.Errorf("decoding response body: %w", err)
			}
			out.Body = &decoded
		}

		return out, nil
	}
}

// GetJSON adapts a GET request for a JSON resource into a Call. A nil client
// uses http.DefaultClient.
//
// Example:
//
//	call := resource.GetJSON[User](nil, "https://api.example.com/users/1")
func GetJSON[T any](client *http.Client, url string) Call[T] {
	return HTTPCall[T](client, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	})
}

// isTimeout reports whether the transport error is a timeout, covering both
// net.Error deadlines and context deadline expiry.
func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
