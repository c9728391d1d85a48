// File: utils/keycrypt.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"huddle/config"

	"golang.org/x/crypto/chacha20poly1305"
)

// sealSecret derives the AEAD key for relay key storage. Falls back
// to the JWT secret when RELAY_KEY_SECRET is unset.
func sealSecret() []byte {
	secret := config.AppConfig.RelayKeySecret
	if secret == "" {
		secret = string(secretKey)
	}
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// SealKey encrypts a relay API key for storage. Relay keys must be
// recoverable to authenticate outbound delivery calls, so they are
// sealed rather than hashed.
func SealKey(plain string) (string, error) {
	aead, err := chacha20poly1305.NewX(sealSecret())
	if err != nil {
		return "", fmt.Errorf("failed to build cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenKey decrypts a sealed relay API key.
func OpenKey(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("malformed sealed key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(sealSecret())
	if err != nil {
		return "", fmt.Errorf("failed to build cipher: %w", err)
	}
	if len(raw) < aead.NonceSize() {
		return "", errors.New("sealed key too short")
	}
	nonce, box := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, box, nil)
	if err != nil {
		return "", errors.New("failed to open sealed key")
	}
	return string(plain), nil
}
