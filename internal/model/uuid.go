package model

import "github.com/google/uuid"

// GenerateUUID creates a new lower-case, hyphenated v4 UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}
