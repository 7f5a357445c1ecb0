// internal/domain/user.go
package domain

import "strings"

// NormalizeUser returns the canonical form of a user identifier.
// Users are not stored entities; they are the distinct normalized values
// found in the deposit and withdrawal streams.
func NormalizeUser(raw string) string {
	return strings.TrimSpace(raw)
}
