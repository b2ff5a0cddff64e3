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

// sqliteGroceryListRepo, GroceryListRepository'nin SQLite implementasyonu.
// Çok adımlı yazmalar transaction gerektirdiği için *sql.DB tutar.
type sqliteGroceryListRepo struct {
	db *sql.DB
}

// NewSQLiteGroceryListRepo, constructor.
func NewSQLiteGroceryListRepo(db *sql.DB) GroceryListRepository {
	return &sqliteGroceryListRepo{db: db}
}

const listColumns = `id, user_id, name, is_active, saved_at, created_at, updated_at`

func scanList(row interface{ Scan(...any) error }) (*models.GroceryList, error) {
	list := &models.GroceryList{}
	err := row.Scan(&list.ID, &list.UserID, &list.Name, &list.IsActive,
		&list.SavedAt, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *sqliteGroceryListRepo) GetActive(ctx context.Context, userID string) (*models.GroceryList, error) {
	list, err := scanList(r.db.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM grocery_lists WHERE user_id = ? AND is_active = 1`, userID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active grocery list: %w", err)
	}

	if list.Items, err = r.listItems(ctx, r.db, list.ID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *sqliteGroceryListRepo) CreateActive(ctx context.Context, userID string) (*models.GroceryList, error) {
	query := `
		INSERT INTO grocery_lists (id, user_id, name, is_active)
		VALUES (?, ?, ?, 1)
		RETURNING ` + listColumns

	list, err := scanList(r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, models.DefaultListName))
	if err != nil {
		if isUniqueViolation(err) {
			return r.GetActive(ctx, userID)
		}
		return nil, fmt.Errorf("failed to create active grocery list: %w", err)
	}

	list.Items = []models.GroceryItem{}
	return list, nil
}

func (r *sqliteGroceryListRepo) ReplaceItems(ctx context.Context, listID string, items []models.GroceryItem) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM grocery_items WHERE list_id = ?`, listID); err != nil {
			return fmt.Errorf("failed to clear grocery items: %w", err)
		}
		if err := insertItems(ctx, tx, listID, items); err != nil {
			return err
		}
		return touchList(ctx, tx, listID)
	})
}

func (r *sqliteGroceryListRepo) GetItem(ctx context.Context, listID, itemID string) (*models.GroceryItem, error) {
	query := `SELECT id, name, amount, unit, checked, aisle
		FROM grocery_items WHERE list_id = ? AND id = ?`

	item := &models.GroceryItem{}
	err := r.db.QueryRowContext(ctx, query, listID, itemID).Scan(
		&item.ID, &item.Name, &item.Amount, &item.Unit, &item.Checked, &item.Aisle,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grocery item: %w", err)
	}

	return item, nil
}

func (r *sqliteGroceryListRepo) UpdateItem(ctx context.Context, listID string, item *models.GroceryItem) error {
	query := `
		UPDATE grocery_items
		SET name = ?, amount = ?, unit = ?, checked = ?, aisle = ?, updated_at = CURRENT_TIMESTAMP
		WHERE list_id = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Amount, item.Unit, item.Checked, aisleOrDefault(item.Aisle), listID, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update grocery item: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteGroceryListRepo) DeleteItem(ctx context.Context, listID, itemID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM grocery_items WHERE list_id = ? AND id = ?`, listID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteGroceryListRepo) ClearItems(ctx context.Context, listID string) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM grocery_items WHERE list_id = ?`, listID); err != nil {
			return fmt.Errorf("failed to clear grocery items: %w", err)
		}
		return touchList(ctx, tx, listID)
	})
}

func (r *sqliteGroceryListRepo) CreateSaved(ctx context.Context, list *models.GroceryList) error {
	if list.SavedAt == nil {
		now := time.Now().UTC()
		list.SavedAt = &now
	}

	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO grocery_lists (id, user_id, name, is_active, saved_at)
			VALUES (?, ?, ?, 0, ?)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowContext(ctx, query,
			uuid.NewString(), list.UserID, list.Name, list.SavedAt.UTC(),
		).Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create saved grocery list: %w", err)
		}

		list.IsActive = false
		return insertItems(ctx, tx, list.ID, list.Items)
	})
}

func (r *sqliteGroceryListRepo) GetSaved(ctx context.Context, userID, listID string) (*models.GroceryList, error) {
	list, err := scanList(r.db.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM grocery_lists WHERE id = ? AND user_id = ? AND is_active = 0`,
		listID, userID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved grocery list: %w", err)
	}

	if list.Items, err = r.listItems(ctx, r.db, list.ID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *sqliteGroceryListRepo) ListSaved(ctx context.Context, userID string) ([]models.GroceryList, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+listColumns+` FROM grocery_lists
		WHERE user_id = ? AND is_active = 0
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved grocery lists: %w", err)
	}
	defer rows.Close()

	lists := []models.GroceryList{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grocery list row: %w", err)
		}
		lists = append(lists, *list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grocery list rows: %w", err)
	}
	rows.Close()

	// Item'lar ayrı sorguyla: açık rows varken ikinci sorgu tek bağlantılı
	// pool'da kilitlenebilir.
	for i := range lists {
		if lists[i].Items, err = r.listItems(ctx, r.db, lists[i].ID); err != nil {
			return nil, err
		}
	}

	return lists, nil
}

func (r *sqliteGroceryListRepo) DeleteSaved(ctx context.Context, userID, listID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM grocery_lists WHERE id = ? AND user_id = ? AND is_active = 0`, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete saved grocery list: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteGroceryListRepo) listItems(ctx context.Context, q database.TxQuerier, listID string) ([]models.GroceryItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, amount, unit, checked, aisle
		FROM grocery_items WHERE list_id = ?
		ORDER BY sort_order, created_at`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grocery items: %w", err)
	}
	defer rows.Close()

	items := []models.GroceryItem{}
	for rows.Next() {
		var item models.GroceryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Amount, &item.Unit, &item.Checked, &item.Aisle); err != nil {
			return nil, fmt.Errorf("failed to scan grocery item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grocery item rows: %w", err)
	}

	return items, nil
}

func insertItems(ctx context.Context, tx *sql.Tx, listID string, items []models.GroceryItem) error {
	if len(items) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO grocery_items (list_id, id, name, amount, unit, checked, aisle, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare grocery item insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.ExecContext(ctx,
			listID, item.ID, item.Name, item.Amount, item.Unit, item.Checked, aisleOrDefault(item.Aisle), i,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: duplicate item id %q", pkg.ErrBadRequest, item.ID)
			}
			return fmt.Errorf("failed to insert grocery item: %w", err)
		}
	}

	return nil
}

func touchList(ctx context.Context, tx *sql.Tx, listID string) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE grocery_lists SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, listID)
	if err != nil {
		return fmt.Errorf("failed to touch grocery list: %w", err)
	}
	return requireAffected(result)
}

func aisleOrDefault(aisle string) string {
	if aisle == "" {
		return models.DefaultAisle
	}
	return aisle
}
