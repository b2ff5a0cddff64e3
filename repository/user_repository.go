// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz, bu paketteki interface'ler üzerinden
// çalışır. Her interface'in bir sqlite_* implementasyonu vardır; testler aynı
// interface'i sahte (fake) struct'larla karşılayabilir.
package repository

import (
	"context"

	"github.com/akinalp/grocery-planner/models"
)

// UserRepository, kullanıcı hesabı işlemleri için interface.
type UserRepository interface {
	// Create, yeni kullanıcı ekler; ID ve CreatedAt doldurulur.
	// Email zaten kayıtlıysa pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail, büyük/küçük harf duyarsız arar (COLLATE NOCASE).
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ConfirmEmail, email_confirmed_at'i set eder. Zaten doğrulanmışsa dokunmaz.
	ConfirmEmail(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
	// Delete, hesabı siler. FK cascade ile oturumlar, profil ve listeler de gider.
	Delete(ctx context.Context, id string) error
}
