package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akinalp/grocery-planner/database"
	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
)

type sqliteProfileRepo struct {
	db database.TxQuerier
}

// NewSQLiteProfileRepo, constructor.
func NewSQLiteProfileRepo(db database.TxQuerier) ProfileRepository {
	return &sqliteProfileRepo{db: db}
}

func (r *sqliteProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT user_id, display_name, avatar_url, preferences, created_at, updated_at
		FROM profiles WHERE user_id = ?`

	profile := &models.Profile{}
	var prefs string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID, &profile.DisplayName, &profile.AvatarURL, &prefs,
		&profile.CreatedAt, &profile.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.Preferences = json.RawMessage(prefs)
	return profile, nil
}

// Upsert, ON CONFLICT ile tek sorguda ekle-veya-güncelle yapar.
// COALESCE(excluded.x, profiles.x): istekte gelmeyen (NULL) alan eski değerini korur.
func (r *sqliteProfileRepo) Upsert(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	var prefs *string
	if len(req.Preferences) > 0 && string(req.Preferences) != "null" {
		p := string(req.Preferences)
		prefs = &p
	}

	query := `
		INSERT INTO profiles (user_id, display_name, avatar_url, preferences)
		VALUES (?, ?, ?, COALESCE(?, '{}'))
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = COALESCE(excluded.display_name, profiles.display_name),
			avatar_url   = COALESCE(excluded.avatar_url, profiles.avatar_url),
			preferences  = CASE WHEN ? IS NULL THEN profiles.preferences ELSE excluded.preferences END,
			updated_at   = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, userID, req.DisplayName, req.AvatarURL, prefs, prefs); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return r.GetByUserID(ctx, userID)
}
