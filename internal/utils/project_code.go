package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateProjectCode generates a short project code in the format XXXX-XXXX
func GenerateProjectCode() (string, error) {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := hex.EncodeToString(bytes)
	return fmt.Sprintf("%s-%s", code[0:4], code[4:8]), nil
}
