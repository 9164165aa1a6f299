package inference

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed inference outcome.
type Kind string

const (
	KindMissingCredential  Kind = "missing_credential"
	KindInvalidToken       Kind = "invalid_token"
	KindModelNotFound      Kind = "model_not_found"
	KindModelLoading       Kind = "model_loading"
	KindUnsupportedPayload Kind = "unsupported_payload"
	KindRateLimited        Kind = "rate_limited"
	KindTimeout            Kind = "timeout"
	KindMalformedResponse  Kind = "malformed_response"
	KindAPIError           Kind = "api_error"
	KindConnection         Kind = "connection_error"
)

// Error is the failure side of an inference outcome.
// Status and Body are set for KindAPIError; Message carries the transport
// error text for KindConnection. Truncated reports that Body holds only the
// first maxResponseBytes of the response.
type Error struct {
	Kind      Kind
	Status    int
	Body      string
	Truncated bool
	Message   string
	Err       error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingCredential:
		return "missing API token: enter a Hugging Face token first"
	case KindInvalidToken:
		return "invalid or expired token"
	case KindModelNotFound:
		if e.Message != "" {
			return "model not found: " + e.Message
		}
		return "model not found; try another model from the list"
	case KindModelLoading:
		return "model is loading, retry in 10-20 seconds"
	case KindUnsupportedPayload:
		return "model rejected the payload: it expects a different input"
	case KindRateLimited:
		return "rate limit exceeded, retry later"
	case KindTimeout:
		return "request timed out, retry"
	case KindMalformedResponse:
		return "malformed response: " + e.Message
	case KindAPIError:
		if e.Truncated {
			return fmt.Sprintf("API error: %d - %s... (body truncated)", e.Status, e.Body)
		}
		return fmt.Sprintf("API error: %d - %s", e.Status, e.Body)
	case KindConnection:
		return "connection error: " + e.Message
	}
	return "inference error: " + string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorKind returns the outcome kind as a string for transport payloads.
func (e *Error) ErrorKind() string { return string(e.Kind) }

// Hint suggests a user action for the outcome, or "" when none applies.
func (e *Error) Hint() string {
	switch e.Kind {
	case KindMissingCredential, KindInvalidToken:
		return "create a token at https://huggingface.co/settings/tokens and enter it again"
	case KindModelNotFound:
		return "select another model or check the custom URL"
	case KindModelLoading:
		return "wait 20 seconds, then retry"
	case KindRateLimited:
		return "wait before sending more pages"
	case KindUnsupportedPayload:
		return "try another model or enable pre-processing"
	case KindTimeout:
		return "retry; large pages may need pre-processing"
	}
	return ""
}

// StatusCode maps the outcome to the HTTP status returned by this service.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindMissingCredential, KindInvalidToken:
		return http.StatusUnauthorized
	case KindModelNotFound:
		return http.StatusNotFound
	case KindUnsupportedPayload:
		return http.StatusUnprocessableEntity
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindModelLoading:
		return http.StatusServiceUnavailable
	case KindTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

// KindOf returns the outcome kind carried by err, or "" if err is not an inference error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsMissingCredential reports whether err is a missing-token outcome.
func IsMissingCredential(err error) bool { return KindOf(err) == KindMissingCredential }

// IsModelLoading reports whether err indicates a cold-loading model.
func IsModelLoading(err error) bool { return KindOf(err) == KindModelLoading }

// IsTimeout reports whether err is a timeout outcome.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// classify maps a non-200 status to its outcome.
func classify(status int, body []byte) *Error {
	cut := truncated(body)
	if cut {
		body = body[:maxResponseBytes]
	}
	switch status {
	case http.StatusUnauthorized:
		return &Error{Kind: KindInvalidToken, Status: status}
	case http.StatusNotFound:
		return &Error{Kind: KindModelNotFound, Status: status}
	case http.StatusUnprocessableEntity:
		return &Error{Kind: KindUnsupportedPayload, Status: status, Body: string(body), Truncated: cut}
	case http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, Status: status}
	case http.StatusServiceUnavailable:
		return &Error{Kind: KindModelLoading, Status: status}
	}
	return &Error{Kind: KindAPIError, Status: status, Body: string(body), Truncated: cut}
}
