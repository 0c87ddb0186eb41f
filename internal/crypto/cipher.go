package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize        = 32
	nonceSize      = 12
	kdfIterations  = 100000
	minSaltLength  = 8
	defaultKDFSalt = "secure-finance-manager"
)

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// FieldCipher encrypts text columns with AES-256-GCM. Output is
// base64(nonce || sealed). Empty strings are stored as-is.
type FieldCipher struct {
	aead cipher.AEAD
}

// DeriveKey stretches a configured passphrase into an AES-256 key.
func DeriveKey(passphrase, salt string) []byte {
	if len(salt) < minSaltLength {
		salt = defaultKDFSalt
	}
	return pbkdf2.Key([]byte(passphrase), []byte(salt), kdfIterations, keySize, sha256.New)
}

func NewFieldCipher(key []byte) (*FieldCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init aes: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return &FieldCipher{aead: gcm}, nil
}

// NewFieldCipherFromPassphrase is a shortcut for NewFieldCipher(DeriveKey(...)).
func NewFieldCipherFromPassphrase(passphrase, salt string) (*FieldCipher, error) {
	if passphrase == "" {
		return nil, errors.New("encryption passphrase is empty")
	}
	return NewFieldCipher(DeriveKey(passphrase, salt))
}

func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *FieldCipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(data) < nonceSize {
		return "", ErrCiphertextTooShort
	}
	plain, err := c.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("open ciphertext: %w", err)
	}
	return string(plain), nil
}
