package window

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError.
var ErrConfiguration = errors.New("invalid window configuration")

// ConfigurationError reports an option rejected by New. It is the only error
// the engine ever returns.
type ConfigurationError struct {
	Field string
	Value any
	Want  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("window: %s = %v, want %s", e.Field, e.Value, e.Want)
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
