package repository

import (
	"context"

	"github.com/akinalp/grocery-planner/models"
)

// VerificationRepository, email doğrulama ve kurtarma token'ları için interface.
type VerificationRepository interface {
	// Create, yeni bir token kaydı oluşturur.
	Create(ctx context.Context, token *models.VerificationToken) error

	// GetByTokenHash, hash ve tipe göre token kaydını bulur.
	// Bulunamazsa pkg.ErrNotFound döner.
	GetByTokenHash(ctx context.Context, tokenHash string, tokenType models.VerificationType) (*models.VerificationToken, error)

	// DeleteByID, tek kullanımlık token'ı tüketir.
	DeleteByID(ctx context.Context, id string) error

	// DeleteByUser, kullanıcının verilen tipteki tüm token'larını siler.
	// Yeni token üretmeden önce eskileri geçersiz kılmak için.
	DeleteByUser(ctx context.Context, userID string, tokenType models.VerificationType) error

	// DeleteExpired, süresi dolmuş tüm token'ları temizler (fırsat temizliği).
	DeleteExpired(ctx context.Context) error
}
