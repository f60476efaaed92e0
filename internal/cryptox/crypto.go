// Package cryptox seals small secrets, such as the session token, before
// they are written to the local vault.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/wikireader/internal/common"
	"golang.org/x/crypto/hkdf"
)

const (
	secretSize = 32
	keySize    = 32
)

// tokenKeyInfo binds derived keys to their purpose.
var tokenKeyInfo = []byte("wikireader session token v1")

// LoadOrCreateSecret reads the per-device secret stored at path. When the
// file does not exist a fresh random secret is generated and written with
// 0600 permissions.
func LoadOrCreateSecret(path string) ([]byte, error) {
	secret, err := os.ReadFile(path)
	if err == nil {
		if len(secret) != secretSize {
			return nil, fmt.Errorf("key file %s: unexpected size %d", path, len(secret))
		}
		return secret, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	secret = common.GenerateRandByteArray(secretSize)
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return secret, nil
}

// DeriveKey expands the device secret into an AES-256 key with
// HKDF-SHA256 for the given purpose.
func DeriveKey(secret, info []byte) ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, info), key); err != nil {
		return nil, err
	}
	return key, nil
}

// Sealer encrypts and authenticates values with AES-GCM. The output of
// Seal is nonce || ciphertext.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer keyed for session tokens from the device secret.
func NewSealer(secret []byte) (*Sealer, error) {
	key, err := DeriveKey(secret, tokenKeyInfo)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext under a fresh random nonce.
func (s *Sealer) Seal(plaintext []byte) []byte {
	nonce := common.GenerateRandByteArray(s.aead.NonceSize())
	return s.aead.Seal(nonce, nonce, plaintext, nil)
}

// Open reverses Seal. Tampered, truncated or foreign data yields
// common.ErrInvalidToken.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n {
		return nil, common.ErrInvalidToken
	}
	plaintext, err := s.aead.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	return plaintext, nil
}
