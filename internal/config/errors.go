package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is one rejected config field.
type ValidationError struct {
	Key    string // dotted YAML key, e.g. "store.driver"
	Reason string
	Value  any
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return e.Key + ": " + e.Reason
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError carries every field rejected by one Validate call.
// errors.As reaches each *ValidationError through Unwrap.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid config (%d fields)", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// InvalidKeys lists the keys rejected by err in reporting order, or nil when
// err carries no ValidationError.
func InvalidKeys(err error) []string {
	var agg *AggregateError
	if errors.As(err, &agg) {
		keys := make([]string, 0, len(agg.Errors))
		for _, e := range agg.Errors {
			var ve *ValidationError
			if errors.As(e, &ve) {
				keys = append(keys, ve.Key)
			}
		}
		return keys
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return []string{ve.Key}
	}
	return nil
}
