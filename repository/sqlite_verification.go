package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/grocery-planner/database"
	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
)

// sqliteVerificationRepo, verification_tokens tablosu üzerinde çalışır.
// Token plaintext olarak SAKLANMAZ, sadece SHA256 hash saklanır.
type sqliteVerificationRepo struct {
	db database.TxQuerier
}

// NewSQLiteVerificationRepo, constructor.
func NewSQLiteVerificationRepo(db database.TxQuerier) VerificationRepository {
	return &sqliteVerificationRepo{db: db}
}

func (r *sqliteVerificationRepo) Create(ctx context.Context, token *models.VerificationToken) error {
	query := `INSERT INTO verification_tokens (id, user_id, token_hash, type, expires_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), token.UserID, token.TokenHash, token.Type, token.ExpiresAt.UTC(),
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	return nil
}

func (r *sqliteVerificationRepo) GetByTokenHash(ctx context.Context, tokenHash string, tokenType models.VerificationType) (*models.VerificationToken, error) {
	query := `SELECT id, user_id, token_hash, type, expires_at, created_at
		FROM verification_tokens WHERE token_hash = ? AND type = ?`

	token := &models.VerificationToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash, tokenType).Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.Type, &token.ExpiresAt, &token.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification token: %w", err)
	}

	return token, nil
}

func (r *sqliteVerificationRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM verification_tokens WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete verification token: %w", err)
	}
	return nil
}

func (r *sqliteVerificationRepo) DeleteByUser(ctx context.Context, userID string, tokenType models.VerificationType) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_tokens WHERE user_id = ? AND type = ?`, userID, tokenType)
	if err != nil {
		return fmt.Errorf("failed to delete user's verification tokens: %w", err)
	}
	return nil
}

func (r *sqliteVerificationRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM verification_tokens WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to delete expired verification tokens: %w", err)
	}
	return nil
}
