package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// ErrDecrypt reports ciphertext that cannot be decrypted with the current
// secret: either the secret was rotated or the stored value is corrupt.
// Callers must treat this as "re-authentication required", never as an
// empty token.
var ErrDecrypt = errors.New("cryptox: decryption failed")

// keyInfo domain-separates the derived key from any other use of the secret.
const keyInfo = "arkstats token cipher v1"

// EncryptedPair holds a Discord access/refresh token pair encrypted at rest.
// Each field is independently encrypted; plaintext tokens never persist.
type EncryptedPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenCipher encrypts and decrypts stored OAuth2 credentials with
// AES-256-GCM. The key is derived once from a process-wide secret via
// HKDF-SHA256, so every handler shares the same cipher instance.
type TokenCipher struct {
	aead cipher.AEAD
}

// NewTokenCipher derives an AES-256 key from secret and returns a ready
// cipher. The secret must be non-empty and is assumed immutable for the
// process lifetime.
func NewTokenCipher(secret string) (*TokenCipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("cryptox: secret must not be empty")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create GCM: %w", err)
	}

	return &TokenCipher{aead: aead}, nil
}

// Encrypt seals a single token. A fresh random nonce is generated per call,
// so repeated calls on the same input produce different ciphertexts that all
// decrypt to the same plaintext. Output format is base64url(nonce || ct || tag).
func (c *TokenCipher) Encrypt(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("cryptox: refusing to encrypt empty token")
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("cryptox: generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(token), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt. Any authentication or format
// failure is reported as ErrDecrypt without leaking partial plaintext.
func (c *TokenCipher) Decrypt(encoded string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrDecrypt
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrDecrypt
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}

// EncryptPair encrypts an access/refresh token pair for storage.
func (c *TokenCipher) EncryptPair(access, refresh string) (EncryptedPair, error) {
	encAccess, err := c.Encrypt(access)
	if err != nil {
		return EncryptedPair{}, fmt.Errorf("encrypt access token: %w", err)
	}

	encRefresh, err := c.Encrypt(refresh)
	if err != nil {
		return EncryptedPair{}, fmt.Errorf("encrypt refresh token: %w", err)
	}

	return EncryptedPair{AccessToken: encAccess, RefreshToken: encRefresh}, nil
}

// DecryptPair recovers the plaintext pair. On failure no token value is
// returned.
func (c *TokenCipher) DecryptPair(pair EncryptedPair) (access, refresh string, err error) {
	access, err = c.Decrypt(pair.AccessToken)
	if err != nil {
		return "", "", err
	}

	refresh, err = c.Decrypt(pair.RefreshToken)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}
