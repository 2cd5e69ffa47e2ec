package services

import (
	"fmt"
	"strings"
)

// DataQualityError reports input jobs the engine refuses to route: repeated
// ids, or missing coordinates under the strict policy.
type DataQualityError struct {
	JobIDs []string
	Reason string
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("data quality: %s: %s", e.Reason, strings.Join(e.JobIDs, ", "))
}

// ComputationError wraps a panic recovered while routing.
type ComputationError struct {
	Cause any
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("route computation failed: %v", e.Cause)
}

// Unwrap exposes the cause when the panic value was itself an error.
func (e *ComputationError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
