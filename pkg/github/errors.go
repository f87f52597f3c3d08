package github

import "errors"

var (
	// ErrInvalidConfig is returned when required configuration is missing
	ErrInvalidConfig = errors.New("invalid github client configuration")

	// ErrUnauthorized is returned when the token is rejected
	ErrUnauthorized = errors.New("unauthorized: invalid github token")

	// ErrDispatchFailed is returned when the workflow dispatch is not accepted
	ErrDispatchFailed = errors.New("workflow dispatch failed")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")
)
