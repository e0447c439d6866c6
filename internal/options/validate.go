// Package options provides shared utilities for option validation across packages.
package options

import (
	"github.com/erraggy/schemawalk/schemaerrors"
)

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// noSourceMsg is the error message when no source is specified.
// multiSourceMsg is the error message when multiple sources are specified.
// The returned error is a *schemaerrors.ConfigError.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	if sourceCount == 0 {
		return &schemaerrors.ConfigError{Option: "input", Message: noSourceMsg}
	}
	if sourceCount > 1 {
		return &schemaerrors.ConfigError{Option: "input", Value: sourceCount, Message: multiSourceMsg}
	}

	return nil
}

// ValidateNonNegative returns a *schemaerrors.ConfigError when value is negative.
func ValidateNonNegative(option string, value int64) error {
	if value < 0 {
		return &schemaerrors.ConfigError{Option: option, Value: value, Message: "must not be negative"}
	}
	return nil
}
