package resource

import (
	"encoding/json"
	"log/slog"

	"github.com/tidwall/gjson"
)

// APIError is the structured error detail some services include in failed
// response bodies. Every field is optional; absent keys decode to the empty
// string.
type APIError struct {
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message,omitempty"`
}

// apiErrorList is the wrapped form: {"apiErrors": [{...}, ...]}.
type apiErrorList struct {
	APIErrors []APIError `json:"apiErrors"`
}

// ParseAPIError extracts an APIError from a raw error response body. Two
// shapes are recognized: an object with a top-level "apiErrors" array, in
// which case the first element is returned, and a bare APIError object. It
// returns nil when the body is empty, not valid JSON, or matches neither
// shape, and never panics, so callers can feed it arbitrary response bodies.
//
// Example:
//
//	apiErr := resource.ParseAPIError(body)
//	if apiErr != nil {
//	    log.Printf("server rejected request: %s (%s)", apiErr.Message, apiErr.Code)
//	}
func ParseAPIError(raw []byte) *APIError {
	return parseAPIError(slog.Default(), raw)
}

// parseAPIError is the logger-carrying form used by the flow adapters.
func parseAPIError(logger *slog.Logger, raw []byte) *APIError {
	if len(raw) == 0 {
		return nil
	}

	if !gjson.ValidBytes(raw) {
		logger.Debug("error body is not valid JSON",
			"body", string(raw))
		return nil
	}

	// The wrapped shape is identified by an actual top-level key, not by the
	// key name appearing anywhere in the payload.
	if gjson.GetBytes(raw, "apiErrors").Exists() {
		var list apiErrorList
		if err := json.Unmarshal(raw, &list); err == nil {
			if len(list.APIErrors) == 0 {
				return nil
			}
			return &list.APIErrors[0]
		}

		logger.Debug("error body has an apiErrors key but no error list, trying bare shape",
			"body", string(raw))
	}

	var apiErr APIError
	if err := json.Unmarshal(raw, &apiErr); err != nil {
		logger.Debug("error body does not decode as an API error",
			"body", string(raw),
			"error", err)
		return nil
	}

	if apiErr == (APIError{}) {
		return nil
	}

	return &apiErr
}
