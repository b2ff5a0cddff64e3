package models

import (
	"fmt"
	"time"
)

// VerificationType, email ile gönderilen tek kullanımlık token'ın amacı.
type VerificationType string

const (
	// VerificationSignup, kayıt sonrası email adresini doğrular.
	VerificationSignup VerificationType = "signup"
	// VerificationRecovery, şifresini unutan kullanıcıyı oturum açmış hale getirir.
	VerificationRecovery VerificationType = "recovery"
)

// Valid, bilinen bir tip mi?
func (t VerificationType) Valid() bool {
	return t == VerificationSignup || t == VerificationRecovery
}

// VerificationToken, DB'deki token kaydı. Plaintext token email'de gider,
// DB'de sadece SHA256 hash'i (hex) saklanır.
type VerificationToken struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	TokenHash string           `json:"-"`
	Type      VerificationType `json:"type"`
	ExpiresAt time.Time        `json:"expires_at"`
	CreatedAt time.Time        `json:"created_at"`
}

// Expired, token'ın süresi dolmuş mu?
func (t *VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// VerifyRequest, POST /api/auth/verify body'si.
// token_hash: email'deki link'ten alınan token.
type VerifyRequest struct {
	TokenHash string           `json:"token_hash"`
	Type      VerificationType `json:"type"`
}

// Validate, VerifyRequest geçerlilik kontrolü.
func (r *VerifyRequest) Validate() error {
	if r.TokenHash == "" || r.Type == "" {
		return fmt.Errorf("token hash and type are required")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("unsupported verification type: %s", r.Type)
	}
	return nil
}

// VerifyResponse, doğrulama sonrası dönen kullanıcı ve (varsa) oturum.
type VerifyResponse struct {
	User    AuthUser     `json:"user"`
	Session *AuthSession `json:"session"`
}

// RecoverRequest, hesap kurtarma email'i isteği.
type RecoverRequest struct {
	Email string `json:"email"`
}

// Validate, RecoverRequest geçerlilik kontrolü.
func (r *RecoverRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}
