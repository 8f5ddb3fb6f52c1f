// Package crypto encrypts sensitive employee fields at rest with AES-GCM.
// An unconfigured service passes values through unchanged so development
// environments work without a key.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
)

type Service struct {
	gcm cipher.AEAD
}

// New builds the service from DATA_ENCRYPTION_KEY. The key may be hex,
// base64, or raw bytes, and must decode to 32 bytes. An empty key yields a
// passthrough service.
func New(key string) (*Service, error) {
	if key == "" {
		return &Service{}, nil
	}
	decoded := decodeKey(key)
	if len(decoded) != 32 {
		return nil, errors.New("DATA_ENCRYPTION_KEY must be 32 bytes after decoding")
	}
	block, err := aes.NewCipher(decoded)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Service{gcm: gcm}, nil
}

func (s *Service) Configured() bool {
	return s.gcm != nil
}

// EncryptString returns nonce||ciphertext for value, or the raw bytes when
// no key is configured.
func (s *Service) EncryptString(value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	if !s.Configured() {
		return []byte(value), nil
	}
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.gcm.Seal(nonce, nonce, []byte(value), nil), nil
}

func (s *Service) DecryptString(ciphertext []byte) (string, error) {
	if len(ciphertext) == 0 {
		return "", nil
	}
	if !s.Configured() {
		return string(ciphertext), nil
	}
	if len(ciphertext) < s.gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	nonce := ciphertext[:s.gcm.NonceSize()]
	plain, err := s.gcm.Open(nil, nonce, ciphertext[s.gcm.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func decodeKey(raw string) []byte {
	if len(raw) == 64 {
		if decoded, err := hex.DecodeString(raw); err == nil {
			return decoded
		}
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return decoded
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(raw); err == nil {
		return decoded
	}
	return []byte(raw)
}
