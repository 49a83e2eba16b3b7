package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// InvalidCredentialsMessage is the single message shown for any
// credential failure so the login form never reveals whether the
// email exists.
const InvalidCredentialsMessage = "Invalid email or password."

// GatewayError is a rejection from the identity gateway with the
// upstream code preserved and a message safe to show to users.
type GatewayError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("identity gateway: %s (status %d)", e.Message, e.StatusCode)
}

// IsInvalidCredentials reports whether err is a gateway rejection of
// the email/password pair itself rather than a transport or quota
// problem.
func IsInvalidCredentials(err error) bool {
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		return false
	}
	return gwErr.Message == InvalidCredentialsMessage
}

type gatewayErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseGatewayError(status int, raw []byte) error {
	var body gatewayErrorBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Error.Message == "" {
		return &GatewayError{
			StatusCode: status,
			Code:       "UNKNOWN",
			Message:    "The identity service rejected the request.",
		}
	}
	return &GatewayError{
		StatusCode: status,
		Code:       body.Error.Message,
		Message:    humanizeGatewayCode(body.Error.Message),
	}
}

// humanizeGatewayCode turns upstream machine codes such as
// INVALID_PASSWORD or TOO_MANY_ATTEMPTS_TRY_LATER into readable text.
// Codes that disclose whether an account exists collapse into one
// generic credentials message.
func humanizeGatewayCode(code string) string {
	readable := strings.ToLower(strings.ReplaceAll(code, "_", " "))
	if strings.Contains(readable, "invalid password") ||
		strings.Contains(readable, "email not found") ||
		strings.Contains(readable, "invalid login credentials") {
		return InvalidCredentialsMessage
	}
	return readable
}
