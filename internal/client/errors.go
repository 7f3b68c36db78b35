package client

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	// ErrConfiguration is matched by every ConfigurationError.
	ErrConfiguration = errors.New("endpoint is not configured")
	// ErrUnrecognizedEnvelope is returned when a read response has none of the known shapes.
	ErrUnrecognizedEnvelope = errors.New("unrecognized response envelope")
)

const (
	msgNetwork = "Network error: Unable to connect to the API. Please check your internet connection and API endpoint."
	msgCORS    = "CORS error: The API server is not allowing requests from this domain. Please check CORS configuration."
)

// ConfigurationError reports a required endpoint setting that is empty.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Key)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// SubmissionError is a failed configuration write. Either Status/Body
// (non-2xx response) or Err (transport failure) is set.
type SubmissionError struct {
	Status int
	Body   string
	Err    error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return "submit configuration: " + e.Err.Error()
	}
	return fmt.Sprintf("API Error: %d - %s", e.Status, e.Body)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// FetchError is a failed sensor read.
type FetchError struct {
	Status int
	Body   string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Describe turns any client error into the message shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrConfiguration) {
		var ce *ConfigurationError
		if errors.As(err, &ce) {
			return "Configuration error: " + ce.Error()
		}
		return "Configuration error: " + err.Error()
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return msgNetwork
	}
	if strings.Contains(err.Error(), "CORS") {
		return msgCORS
	}

	var se *SubmissionError
	if errors.As(err, &se) && se.Err == nil {
		return "Error: " + se.Error()
	}
	return "Error: " + err.Error()
}
