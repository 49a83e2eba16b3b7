package auth

import "strings"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// NormalizeRole maps a stored role value onto one of the two portal
// roles. Comparison is case-insensitive; anything else is rejected so
// an account with a mangled or unexpected role cannot sign in.
func NormalizeRole(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleEmployee:
		return RoleEmployee, true
	default:
		return "", false
	}
}
