// Package crypto, AES-256-GCM ile küçük kayıtların şifrelenmesi.
//
// Client tarafındaki fallback store, paylaşılan bir cihazda grocery listelerini
// diskte okunamaz tutmak için kullanır. GCM hem gizlilik hem bütünlük sağlar:
// yanlış anahtar veya bozulmuş veri Open'da hata verir.
//
//	key, _ := crypto.ParseKey("64 hex karakter")
//	sealed, _ := crypto.Seal([]byte("secret"), key)
//	plain, _ := crypto.Open(sealed, key)
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// KeySize, AES-256 anahtar uzunluğu (byte).
const KeySize = 32

// ErrDecrypt, yanlış anahtar veya bozulmuş veri.
var ErrDecrypt = errors.New("decryption failed")

// ParseKey, hex-encoded 32 byte anahtarı çözer.
func ParseKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be exactly %d bytes (%d hex chars), got %d bytes", KeySize, KeySize*2, len(key))
	}
	return key, nil
}

// GenerateKey, yeni rastgele anahtar üretir ve hex olarak döner.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("key generation: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// Seal, plaintext'i şifreler. Çıktı: nonce (12 byte) + ciphertext + tag.
func Seal(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce generation: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open, Seal çıktısını çözer.
func Open(sealed, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
