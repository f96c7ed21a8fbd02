// Package util provides identifier helpers for the ordering engine.
package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID returns a random RFC 4122 v4 UUID string
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateOrderID returns a short upper-case order reference such as "ORD-1A2B3C4D"
func GenerateOrderID() string {
	return "ORD-" + strings.ToUpper(shortID())
}

// GenerateLineID returns a cart line id unique enough for one cart, e.g. "bag-1a2b3c4d"
func GenerateLineID(prefix string) string {
	if prefix == "" {
		return shortID()
	}
	return prefix + "-" + shortID()
}

func shortID() string {
	u := uuid.New()
	return strings.ReplaceAll(u.String(), "-", "")[:8]
}
