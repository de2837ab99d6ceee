package gateway

import "fmt"

// NetworkError is a transport-level failure: the request never reached
// the server, or no response came back.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the CityFix API, carrying the
// server-supplied message when the body had one.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: api error (%d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: api error (%d)", e.Op, e.StatusCode)
}

// UserMessage returns the text to surface to the user: the server's
// message when present, otherwise a generic fallback.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Something went wrong. Please try again."
}
