package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// External collaborator errors: email, SMS, document storage, language
// model.
var (
	ErrEmailDelivery        = errors.New("email delivery failed")
	ErrEmailNotConfigured   = errors.New("email service not configured")
	ErrSMSDelivery          = errors.New("sms delivery failed")
	ErrSMSNotConfigured     = errors.New("sms service not configured")
	ErrStorageUnavailable   = errors.New("document storage unavailable")
	ErrStorageNotConfigured = errors.New("document storage not configured")
	ErrAINotConfigured      = errors.New("ai service not configured")
	ErrAICompletion         = errors.New("ai completion failed")
	ErrInvalidAPIKey        = errors.New("invalid API key")
	ErrServiceUnavailable   = errors.New("service unavailable")
)

func NewEmailDeliveryError(recipient string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrEmailDelivery,
		Details:    fmt.Sprintf("Failed to deliver email to %s", recipient),
		Cause:      cause,
	}
}

func NewEmailNotConfiguredError(missing string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEmailNotConfigured,
		Details:    fmt.Sprintf("Missing configuration: %s", missing),
		Field:      missing,
	}
}

func NewSMSNotConfiguredError(missing string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrSMSNotConfigured,
		Details:    fmt.Sprintf("Missing configuration: %s", missing),
		Field:      missing,
	}
}

func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageUnavailable,
		Details:    fmt.Sprintf("Document storage failed during %s", operation),
		Cause:      cause,
	}
}

func NewStorageNotConfiguredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrStorageNotConfigured,
		Details:    "DOCUMENTS_BUCKET is not set",
		Field:      "DOCUMENTS_BUCKET",
	}
}

func NewAINotConfiguredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrAINotConfigured,
		Details:    "OPENAI_API_KEY is not set",
		Field:      "OPENAI_API_KEY",
	}
}

func NewAICompletionError(kind string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrAICompletion,
		Details:    fmt.Sprintf("Model call failed during %s", kind),
		Cause:      cause,
	}
}

func IsEmailDeliveryError(err error) bool {
	return errors.Is(err, ErrEmailDelivery)
}

func IsEmailNotConfiguredError(err error) bool {
	return errors.Is(err, ErrEmailNotConfigured)
}

func IsAINotConfiguredError(err error) bool {
	return errors.Is(err, ErrAINotConfigured)
}

func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
