package models

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Profile, kullanıcının düzenlenebilir profil bilgileri.
// Preferences serbest biçimli JSON'dur (diyet, mutfak tercihleri vb.) —
// şeması frontend'e aittir, server sadece saklar.
type Profile struct {
	UserID      string          `json:"id"`
	DisplayName *string         `json:"display_name"`
	AvatarURL   *string         `json:"avatar_url"`
	Preferences json.RawMessage `json:"preferences"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UpdateProfileRequest, PUT /api/auth/profile body'si.
type UpdateProfileRequest struct {
	DisplayName *string         `json:"display_name"`
	AvatarURL   *string         `json:"avatar_url"`
	Preferences json.RawMessage `json:"preferences"`
}

// Validate, profil güncelleme isteğini kontrol eder.
func (r *UpdateProfileRequest) Validate() error {
	if r.DisplayName != nil && utf8.RuneCountInString(*r.DisplayName) > 64 {
		return fmt.Errorf("display name must be at most 64 characters")
	}
	if len(r.Preferences) > 0 {
		var obj map[string]any
		if err := json.Unmarshal(r.Preferences, &obj); err != nil {
			return fmt.Errorf("preferences must be a JSON object")
		}
	}
	return nil
}

// ProfileResponse, GET /api/auth/profile ve GET /api/users/{id} yanıtı.
// Profil hiç oluşturulmamışsa Profile nil döner.
type ProfileResponse struct {
	User    AuthUser `json:"user"`
	Profile *Profile `json:"profile"`
}
