package repository

import (
	"context"

	"github.com/akinalp/grocery-planner/models"
)

// ProfileRepository, kullanıcı profili işlemleri için interface.
type ProfileRepository interface {
	// GetByUserID, profil yoksa pkg.ErrNotFound döner.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// Upsert, profil yoksa oluşturur, varsa nil olmayan alanları günceller.
	// Güncel kaydı döner.
	Upsert(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error)
}
