package service

import (
	"sort"
	"strings"

	"github.com/pm-platform/patient-service/internal/validation"
)

// ValidationError carries the full set of field violations so the caller can
// fix everything in one round trip.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e.Violations[f])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
