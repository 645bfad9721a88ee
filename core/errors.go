package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Stable text codes carried by every error envelope the library
// returns. Callers branch on these rather than on message text.
const (
	ErrorAPI           = "ADYEN_API_ERROR"
	ErrorNetwork       = "ADYEN_NETWORK_ERROR"
	ErrorSerialization = "ADYEN_SERIALIZATION_ERROR"
	ErrorValidation    = "ADYEN_VALIDATION_ERROR"
	ErrorAuth          = "ADYEN_AUTH_ERROR"
	ErrorInternal      = "ADYEN_INTERNAL_ERROR"
)

// APIError is the structured error body Adyen returns for rejected
// requests. It is wrapped in a go-errors envelope by NewAPIError and
// recoverable from any returned error via AsAPIError.
type APIError struct {
	Status       int    `json:"status"`
	ErrorCode    string `json:"errorCode"`
	Message      string `json:"message"`
	ErrorType    string `json:"errorType,omitempty"`
	PSPReference string `json:"pspReference,omitempty"`
}

func (e *APIError) Error() string {
	if e == nil {
		return "adyen: api error"
	}
	if strings.TrimSpace(e.ErrorCode) != "" {
		return fmt.Sprintf("adyen: api error %d (%s): %s", e.Status, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("adyen: api error %d: %s", e.Status, e.Message)
}

// IsClientError reports whether the vendor rejected the request with a
// 4xx status. Client errors are never retried.
func (e *APIError) IsClientError() bool {
	return e != nil && e.Status >= 400 && e.Status < 500
}

// IsServerError reports whether the vendor failed with a 5xx status.
func (e *APIError) IsServerError() bool {
	return e != nil && e.Status >= 500
}

// NewAPIError wraps a decoded vendor error body in the library's
// error envelope, preserving the vendor status as the numeric code.
func NewAPIError(apiErr *APIError) error {
	if apiErr == nil {
		return nil
	}
	code := apiErr.Status
	if code == 0 {
		code = http.StatusBadGateway
	}
	metadata := map[string]any{
		"error_code": apiErr.ErrorCode,
	}
	if strings.TrimSpace(apiErr.PSPReference) != "" {
		metadata["psp_reference"] = apiErr.PSPReference
	}
	if strings.TrimSpace(apiErr.ErrorType) != "" {
		metadata["error_type"] = apiErr.ErrorType
	}
	return goerrors.Wrap(apiErr, goerrors.CategoryExternal, "adyen: api request rejected").
		WithCode(code).
		WithTextCode(ErrorAPI).
		WithMetadata(metadata)
}

// AsAPIError unwraps the vendor error body from any error returned by
// the library right down through the envelope chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NewValidationError reports a client-side precondition failure. It is
// raised before any network call is attempted.
func NewValidationError(field string, reason string) error {
	return goerrors.New(
		fmt.Sprintf("adyen: invalid %s: %s", strings.TrimSpace(field), strings.TrimSpace(reason)),
		goerrors.CategoryValidation,
	).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorValidation).
		WithMetadata(map[string]any{"field": strings.TrimSpace(field)})
}

// WrapValidationError annotates a precondition failure with its cause,
// keeping the validation category and text code.
func WrapValidationError(source error, field string, reason string) error {
	if source == nil {
		return NewValidationError(field, reason)
	}
	return goerrors.Wrap(
		source,
		goerrors.CategoryValidation,
		fmt.Sprintf("adyen: invalid %s: %s", strings.TrimSpace(field), strings.TrimSpace(reason)),
	).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorValidation).
		WithMetadata(map[string]any{"field": strings.TrimSpace(field)})
}

// NewNetworkError reports a transport-level failure with no vendor
// response to decode.
func NewNetworkError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorNetwork)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// WrapNetworkError annotates a transport-level failure (DNS, TLS,
// reset, timeout) without losing the cause.
func WrapNetworkError(source error, message string, metadata map[string]any) error {
	if source == nil {
		return NewNetworkError(message, metadata)
	}
	err := goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorNetwork)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// WrapSerializationError reports an encode or decode failure. These
// are contract bugs and are never retried.
func WrapSerializationError(source error, message string, metadata map[string]any) error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryBadInput)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryBadInput, message)
	}
	err = err.WithCode(http.StatusBadRequest).WithTextCode(ErrorSerialization)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// NewAuthError reports invalid or unusable credential material.
func NewAuthError(message string) error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ErrorAuth)
}

func textCode(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}

// IsAPIError reports whether err carries a decoded vendor error body.
func IsAPIError(err error) bool { return textCode(err) == ErrorAPI }

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool { return textCode(err) == ErrorNetwork }

// IsSerializationError reports whether err is an encode/decode failure.
func IsSerializationError(err error) bool { return textCode(err) == ErrorSerialization }

// IsValidationError reports whether err is a client-side precondition
// failure raised before any network activity.
func IsValidationError(err error) bool { return textCode(err) == ErrorValidation }
