package models

import "time"

// Session, JWT refresh token oturumunu temsil eder.
// Refresh token DB'de tutulur: logout'ta sadece ilgili oturum silinir,
// çalınan token iptal edilebilir.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthSession, login/register/verify sonrası client'a dönen oturum bilgisi.
type AuthSession struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // saniye
	User         AuthUser `json:"user"`
}
