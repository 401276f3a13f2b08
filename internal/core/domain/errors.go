package domain

import "errors"

var (
	// ErrMissingCredential means the credential store holds nothing for this
	// provider. The provider cannot be loaded until one is configured; this
	// is never silently defaulted.
	ErrMissingCredential = errors.New("no credential configured for provider")

	// ErrInvalidResponse marks a backend body that is not an object with a
	// list-typed data field.
	ErrInvalidResponse = errors.New("backend response is not a model list")
)
