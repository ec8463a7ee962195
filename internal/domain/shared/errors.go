package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Configuration errors

// ConfigurationError reports a settings group that cannot be turned into
// usable domain components (for example a fee rate outside [0,1)).
type ConfigurationError struct {
	*DomainError
	Setting string
	Err     error
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func NewConfigurationError(setting string, err error) *ConfigurationError {
	return &ConfigurationError{
		DomainError: &DomainError{Message: fmt.Sprintf("invalid %s: %v", setting, err)},
		Setting:     setting,
		Err:         err,
	}
}
