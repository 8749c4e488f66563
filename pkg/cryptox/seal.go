package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for deriving the sealing key from a passphrase.
// These match the RFC 9106 low-memory recommendation, which is plenty for
// protecting tokens cached on a workstation.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	keySize      = 32 // AES-256
)

const SaltSize = 16

// ErrCiphertext reports sealed data that is malformed or fails authentication,
// typically because the passphrase changed or the state file was edited.
var ErrCiphertext = errors.New("cryptox: malformed or tampered ciphertext")

// Box seals and opens small secrets with AES-256-GCM using a key derived
// from a passphrase. The sealed form is [nonce][ciphertext||tag].
type Box struct {
	aead cipher.AEAD
}

// NewBox derives a sealing key from the passphrase and salt with Argon2id.
// The same passphrase and salt always yield the same key, so sealed values
// survive process restarts.
func NewBox(passphrase, salt []byte) (*Box, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("cryptox: empty passphrase")
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("cryptox: salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	key := argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, keySize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create gcm: %w", err)
	}

	return &Box{aead: aead}, nil
}

// NewSalt returns a fresh random salt for NewBox.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("cryptox: generate salt: %w", err)
	}
	return salt, nil
}

// Seal encrypts plain with a random nonce per call.
func (b *Box) Seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("cryptox: generate nonce: %w", err)
	}
	return b.aead.Seal(nonce, nonce, plain, nil), nil
}

// Open decrypts data produced by Seal.
func (b *Box) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < b.aead.NonceSize() {
		return nil, ErrCiphertext
	}

	nonce, ciphertext := sealed[:b.aead.NonceSize()], sealed[b.aead.NonceSize():]
	plain, err := b.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrCiphertext
	}
	return plain, nil
}
