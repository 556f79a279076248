package testutil

import (
	"skillsync/internal/encryption"
	"skillsync/internal/skill"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() skill.Encryptor {
	return encryption.NewTestEncryptor()
}
