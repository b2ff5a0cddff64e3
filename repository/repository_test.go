package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/grocery-planner/database"
	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db.Conn
}

func createUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteUserRepo(newTestDB(t))

	user := createUser(t, repo, "cook@example.com")
	assert.NotEmpty(t, user.ID)

	t.Run("duplicate email is case insensitive", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Email: "COOK@example.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
	})

	t.Run("lookup", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "cook@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Nil(t, got.EmailConfirmedAt)

		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})

	t.Run("confirm email", func(t *testing.T) {
		require.NoError(t, repo.ConfirmEmail(ctx, user.ID))
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.EmailConfirmedAt)

		assert.ErrorIs(t, repo.ConfirmEmail(ctx, "missing"), pkg.ErrNotFound)
	})

	t.Run("update password", func(t *testing.T) {
		require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", got.PasswordHash)
	})

	t.Run("delete", func(t *testing.T) {
		other := createUser(t, repo, "other@example.com")
		require.NoError(t, repo.Delete(ctx, other.ID))
		assert.ErrorIs(t, repo.Delete(ctx, other.ID), pkg.ErrNotFound)
	})
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createUser(t, NewSQLiteUserRepo(db), "s@example.com")
	repo := NewSQLiteSessionRepo(db)

	live := &models.Session{UserID: user.ID, RefreshToken: "live", ExpiresAt: time.Now().Add(time.Hour)}
	stale := &models.Session{UserID: user.ID, RefreshToken: "stale", ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))

	got, err := repo.GetByRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, live.ID, got.ID)

	require.NoError(t, repo.DeleteExpired(ctx))
	_, err = repo.GetByRefreshToken(ctx, "stale")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	require.NoError(t, repo.DeleteByUserID(ctx, user.ID))
	_, err = repo.GetByRefreshToken(ctx, "live")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestVerificationRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createUser(t, NewSQLiteUserRepo(db), "v@example.com")
	repo := NewSQLiteVerificationRepo(db)

	token := &models.VerificationToken{
		UserID:    user.ID,
		TokenHash: "abc",
		Type:      models.VerificationSignup,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, token))

	got, err := repo.GetByTokenHash(ctx, "abc", models.VerificationSignup)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.False(t, got.Expired(time.Now()))

	_, err = repo.GetByTokenHash(ctx, "abc", models.VerificationRecovery)
	assert.ErrorIs(t, err, pkg.ErrNotFound, "type must match")

	require.NoError(t, repo.DeleteByUser(ctx, user.ID, models.VerificationSignup))
	_, err = repo.GetByTokenHash(ctx, "abc", models.VerificationSignup)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createUser(t, NewSQLiteUserRepo(db), "p@example.com")
	repo := NewSQLiteProfileRepo(db)

	_, err := repo.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	name := "Chef"
	profile, err := repo.Upsert(ctx, user.ID, &models.UpdateProfileRequest{DisplayName: &name})
	require.NoError(t, err)
	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, "Chef", *profile.DisplayName)
	assert.JSONEq(t, `{}`, string(profile.Preferences))

	// Sadece preferences gönderilince display_name korunmalı.
	profile, err = repo.Upsert(ctx, user.ID, &models.UpdateProfileRequest{
		Preferences: json.RawMessage(`{"diet":"vegan"}`),
	})
	require.NoError(t, err)
	require.NotNil(t, profile.DisplayName)
	assert.Equal(t, "Chef", *profile.DisplayName)
	assert.JSONEq(t, `{"diet":"vegan"}`, string(profile.Preferences))
}

func TestGroceryListRepository_Active(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createUser(t, NewSQLiteUserRepo(db), "g@example.com")
	repo := NewSQLiteGroceryListRepo(db)

	_, err := repo.GetActive(ctx, user.ID)
	require.ErrorIs(t, err, pkg.ErrNotFound)

	list, err := repo.CreateActive(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, list.IsActive)
	assert.Equal(t, models.DefaultListName, list.Name)

	again, err := repo.CreateActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, again.ID, "only one active list per user")

	items := []models.GroceryItem{
		{ID: "b", Name: "Bread", Amount: "1", Unit: "loaf", Aisle: "Bakery"},
		{ID: "a", Name: "Apples", Amount: "6", Checked: true},
	}
	require.NoError(t, repo.ReplaceItems(ctx, list.ID, items))

	got, err := repo.GetActive(ctx, user.ID)
	require.NoError(t, err)
	want := []models.GroceryItem{
		{ID: "b", Name: "Bread", Amount: "1", Unit: "loaf", Aisle: "Bakery"},
		{ID: "a", Name: "Apples", Amount: "6", Checked: true, Aisle: "Other"},
	}
	if diff := cmp.Diff(want, got.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	t.Run("update item", func(t *testing.T) {
		item, err := repo.GetItem(ctx, list.ID, "b")
		require.NoError(t, err)
		item.Checked = true
		require.NoError(t, repo.UpdateItem(ctx, list.ID, item))

		item, err = repo.GetItem(ctx, list.ID, "b")
		require.NoError(t, err)
		assert.True(t, item.Checked)

		assert.ErrorIs(t, repo.UpdateItem(ctx, list.ID, &models.GroceryItem{ID: "zzz"}), pkg.ErrNotFound)
	})

	t.Run("duplicate ids rejected atomically", func(t *testing.T) {
		err := repo.ReplaceItems(ctx, list.ID, []models.GroceryItem{{ID: "x", Name: "1"}, {ID: "x", Name: "2"}})
		assert.ErrorIs(t, err, pkg.ErrBadRequest)

		got, err := repo.GetActive(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, got.Items, 2, "failed replace must roll back")
	})

	t.Run("delete and clear", func(t *testing.T) {
		require.NoError(t, repo.DeleteItem(ctx, list.ID, "a"))
		assert.ErrorIs(t, repo.DeleteItem(ctx, list.ID, "a"), pkg.ErrNotFound)

		require.NoError(t, repo.ClearItems(ctx, list.ID))
		got, err := repo.GetActive(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Items)
	})
}

func TestGroceryListRepository_Saved(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewSQLiteUserRepo(db)
	owner := createUser(t, users, "owner@example.com")
	stranger := createUser(t, users, "stranger@example.com")
	repo := NewSQLiteGroceryListRepo(db)

	first := &models.GroceryList{
		UserID: owner.ID,
		Name:   "Weekend",
		Items:  []models.GroceryItem{{ID: "1", Name: "Eggs", Amount: "12", Aisle: "Dairy"}},
	}
	require.NoError(t, repo.CreateSaved(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.NotNil(t, first.SavedAt)

	second := &models.GroceryList{UserID: owner.ID, Name: "Empty", Items: []models.GroceryItem{}}
	require.NoError(t, repo.CreateSaved(ctx, second))

	lists, err := repo.ListSaved(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, second.ID, lists[0].ID, "newest first")
	assert.Len(t, lists[1].Items, 1)

	got, err := repo.GetSaved(ctx, owner.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekend", got.Name)
	assert.Equal(t, "Eggs", got.Items[0].Name)

	_, err = repo.GetSaved(ctx, stranger.ID, first.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound, "other users cannot see it")
	assert.ErrorIs(t, repo.DeleteSaved(ctx, stranger.ID, first.ID), pkg.ErrNotFound)

	require.NoError(t, repo.DeleteSaved(ctx, owner.ID, first.ID))
	_, err = repo.GetSaved(ctx, owner.ID, first.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// Aktif liste snapshot listesinde görünmemeli.
	_, err = repo.CreateActive(ctx, owner.ID)
	require.NoError(t, err)
	lists, err = repo.ListSaved(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, lists, 1)
}
