package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Hosted backend & storage errors
var (
	ErrServiceUnreachable = errors.New("service unreachable")
	ErrUpstream           = errors.New("upstream request failed")
	ErrUploadFailed       = errors.New("upload failed")
	ErrGatewayFailed      = errors.New("content gateway failed")
	ErrConfigMissing      = errors.New("configuration missing")
)

func NewServiceUnreachableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnreachable,
		Details:    fmt.Sprintf("Service %s is unreachable", service),
		Cause:      cause,
		Field:      "service",
	}
}

// NewUpstreamError reports a non-2xx answer from a hosted service.
func NewUpstreamError(service string, statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUpstream,
		Details:    fmt.Sprintf("%s returned %d: %s", service, statusCode, message),
		Field:      "service",
	}
}

func NewUploadError(key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("Failed to upload %s", key),
		Cause:      cause,
		Field:      "file",
	}
}

func NewGatewayError(operation, entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrGatewayFailed,
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
	}
}

func NewConfigError(configName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration %s is not set", configName),
		Field:      configName,
	}
}

func IsServiceUnreachableError(err error) bool {
	return errors.Is(err, ErrServiceUnreachable)
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
