// Package common defines shared sentinel errors and small helpers used across
// the server and client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Service-level errors.
	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")

	// Generation errors (external LLM API and its output).
	ErrorGeneration      = errors.New("generation failed")
	ErrorMalformedResult = errors.New("malformed generation result")
)
