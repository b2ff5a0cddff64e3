// Package localstore, client tarafının cihazdaki kalıcı key-value store'u.
//
// Uzak API'ye ulaşılamadığında grocery listesinin son hali burada tutulur.
// Sunucuyla aynı SQLite driver'ı ve pragma'ları kullanır (database.Open);
// şema tek tablodan ibarettir ve Open sırasında oluşturulur.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/grocery-planner/database"
	"github.com/akinalp/grocery-planner/pkg/crypto"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at DATETIME NOT NULL
)`

// Store, SQLite tabanlı key-value store.
// key nil değilse değerler AES-256-GCM ile şifreli saklanır.
type Store struct {
	db  *sql.DB
	key []byte
}

// Open, path'teki store'u açar (yoksa oluşturur).
// encryptionKey boşsa şifreleme kapalıdır; doluysa 64 hex karakter olmalı.
func Open(path, encryptionKey string) (*Store, error) {
	var key []byte
	if encryptionKey != "" {
		k, err := crypto.ParseKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid fallback encryption key: %w", err)
		}
		key = k
	}

	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Store{db: db, key: key}, nil
}

// Get, anahtarın değerini döner; yoksa (nil, false, nil).
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if s.key != nil {
		value, err = crypto.Open(value, s.key)
		if err != nil {
			return nil, false, fmt.Errorf("failed to decrypt %s: %w", key, err)
		}
	}
	return value, true, nil
}

// Set, değeri tamamen üzerine yazar.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.key != nil {
		sealed, err := crypto.Seal(value, s.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", key, err)
		}
		value = sealed
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete, anahtarı siler. Olmayan anahtar hata değildir.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys, kayıtlı anahtarlar (CLI'daki "fallback" komutu için).
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close, veritabanı bağlantısını kapatır.
func (s *Store) Close() error {
	return s.db.Close()
}
