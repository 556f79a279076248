package skill

import "io"

// Encryptor handles encryption of export archives and unlocking for
// decryption. Encryption uses the public key only. Decryption requires a
// passphrase to unlock the private key, producing a DecryptionContext for
// the session.
type Encryptor interface {
	// Setup performs one-time key generation. Called during `config init`.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key using the passphrase and returns a
	// DecryptionContext for the session. Fails on a wrong passphrase.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether key material exists. When false,
	// archives are stored unencrypted.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for the
// duration of a retrieval session. The unlocked key is never written to
// disk.
type DecryptionContext interface {
	// Decrypt decrypts data read from r and writes plaintext to w.
	Decrypt(r io.Reader, w io.Writer) error
}
