package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means no usable base URL is set. Returned before any
	// network traffic happens.
	ErrNotConfigured = errors.New("server URL not configured")

	// ErrInvalidURL means the request path could not be composed against the
	// base URL.
	ErrInvalidURL = errors.New("invalid request URL")
)

// StatusError is a non-2xx response from a reachable server.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	switch {
	case e.Code == 401:
		return "unauthorized (401): check username and password"
	case e.Code == 404:
		return "not found (404)"
	case e.Code >= 500:
		return fmt.Sprintf("server error (%d)", e.Code)
	default:
		return fmt.Sprintf("HTTP %d", e.Code)
	}
}

// DecodeError means the server was reachable and answered 2xx but the body
// did not match the expected shape. Retrying will not help; it usually
// signals a client/server version mismatch.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError is a network-level failure: DNS, TLS, timeout, connection
// refused. Distinguished from DecodeError so the UI can tell "unreachable"
// apart from "reachable but bad payload".
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 401
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 404
}

// IsServerError reports whether err is a 5xx response.
func IsServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 500
}

// IsDecodeError reports whether err is a payload-shape mismatch.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsTransportError reports whether err is a network-level failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
