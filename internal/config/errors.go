package config

import "fmt"

// ConfigurationError reports a malformed engine setting. It is raised before
// any route computation runs.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}
