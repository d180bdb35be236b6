package textintel

import "errors"

var (
	// ErrNoProvidersConfigured is returned when the client has no providers.
	ErrNoProvidersConfigured = errors.New("no text intelligence providers configured")

	// ErrAllProvidersFailed is returned when every provider in the fallback
	// chain failed.
	ErrAllProvidersFailed = errors.New("all text intelligence providers failed")

	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("text intelligence circuit breaker is open")

	// ErrEmptyResponse is returned when a provider replies with no content.
	ErrEmptyResponse = errors.New("empty response from provider")
)
