package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type ValidationError struct {
	ErrorMessage
}

type UnauthorizedError struct {
	ErrorMessage
}

type MalformedPayloadError struct {
	ErrorMessage
}

// ConfigError means a required setting (API key, workflow id) is absent.
// Operational fix required; retrying the request cannot help.
type ConfigError struct {
	ErrorMessage
}

// ExternalServiceError wraps a failed call to the backend or the KYC
// provider. Transient marks failures worth retrying from the client side.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewMalformedPayloadError(message string) *MalformedPayloadError {
	return &MalformedPayloadError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewConfigError(message string) *ConfigError {
	return &ConfigError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewExternalServiceError(service, message string, transient bool) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
	}
}
