package utils

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewObjectID returns a 24-character lowercase hex identifier. It is the first
// 12 bytes of a UUIDv7, so identifiers sort by creation time.
func NewObjectID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return hex.EncodeToString(id[:12])
}
