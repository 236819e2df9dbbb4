// Package utils holds small cross-cutting helpers the HTTP layer needs
// that don't belong to any one core component: ID generation and admin
// bearer tokens.
package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateUUID generates a new random identifier for a new entity row.
func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateRequestID generates a unique per-request identifier for logging
// and response headers.
func GenerateRequestID() string {
	return fmt.Sprintf("req_%s", GenerateUUID())
}
