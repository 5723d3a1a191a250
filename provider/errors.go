package provider

import "errors"

var (
	// ErrUnexpectedStatus indicates a non-200 response from a provider.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrMissingAPIKey indicates a provider requiring credentials has none configured.
	ErrMissingAPIKey = errors.New("api key not configured")
)
