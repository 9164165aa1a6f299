package manager

import (
	"errors"
	"net/http"
)

// notFoundError covers unknown sessions, documents, pages and endpoints.
type notFoundError struct{ what string }

func (e notFoundError) Error() string   { return e.what + " not found" }
func (e notFoundError) StatusCode() int { return http.StatusNotFound }

// IsNotFound reports whether err names a missing resource.
func IsNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}

// unsupportedMediaError rejects uploads with an extension outside the accepted set.
type unsupportedMediaError struct{ msg string }

func (e unsupportedMediaError) Error() string   { return e.msg }
func (e unsupportedMediaError) StatusCode() int { return http.StatusUnsupportedMediaType }

// IsUnsupportedMedia reports whether err rejected an upload by type.
func IsUnsupportedMedia(err error) bool {
	var um unsupportedMediaError
	return errors.As(err, &um)
}

// badRequestError reports malformed user input.
type badRequestError struct{ msg string }

func (e badRequestError) Error() string   { return e.msg }
func (e badRequestError) StatusCode() int { return http.StatusBadRequest }

// IsBadRequest reports whether err was caused by invalid input.
func IsBadRequest(err error) bool {
	var br badRequestError
	return errors.As(err, &br)
}

// ErrDraining is returned once Close has been called.
var ErrDraining = drainingError{}

type drainingError struct{}

func (drainingError) Error() string   { return "server is shutting down" }
func (drainingError) StatusCode() int { return http.StatusServiceUnavailable }
