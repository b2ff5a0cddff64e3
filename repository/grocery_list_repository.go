package repository

import (
	"context"

	"github.com/akinalp/grocery-planner/models"
)

// GroceryListRepository, aktif liste ve isimli snapshot'lar için interface.
//
// İkisi de grocery_lists tablosunda yaşar; is_active ile ayrılır.
// Tüm sorgular userID ile kapsamlanır: başkasının listesi "yok" (ErrNotFound) sayılır.
type GroceryListRepository interface {
	// GetActive, kullanıcının aktif listesini item'larıyla döner.
	// Henüz yoksa pkg.ErrNotFound.
	GetActive(ctx context.Context, userID string) (*models.GroceryList, error)
	// CreateActive, boş bir aktif liste oluşturur. Eşzamanlı iki istek yarışırsa
	// unique index ikincisini reddeder; bu durumda mevcut liste döner.
	CreateActive(ctx context.Context, userID string) (*models.GroceryList, error)
	// ReplaceItems, listenin item'larını tek transaction'da tamamen değiştirir.
	// sort_order = slice index.
	ReplaceItems(ctx context.Context, listID string, items []models.GroceryItem) error
	// UpdateItem, tek bir item'ı günceller. Yoksa pkg.ErrNotFound.
	UpdateItem(ctx context.Context, listID string, item *models.GroceryItem) error
	GetItem(ctx context.Context, listID, itemID string) (*models.GroceryItem, error)
	DeleteItem(ctx context.Context, listID, itemID string) error
	ClearItems(ctx context.Context, listID string) error

	// CreateSaved, isimli snapshot'ı item'larıyla birlikte kaydeder.
	CreateSaved(ctx context.Context, list *models.GroceryList) error
	GetSaved(ctx context.Context, userID, listID string) (*models.GroceryList, error)
	// ListSaved, snapshot'ları en yeniden eskiye döner.
	ListSaved(ctx context.Context, userID string) ([]models.GroceryList, error)
	DeleteSaved(ctx context.Context, userID, listID string) error
}
