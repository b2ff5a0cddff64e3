// Package grocery, client tarafındaki aktif grocery listesini yönetir.
//
// Synchronizer bellekteki listenin tek sahibidir. Her değişiklikten sonra
// listenin tamamını uzak store'a iter; uzak store erişilemezse listeyi
// cihazdaki fallback store'a yazar ve offline işaretler.
package grocery

import (
	"context"
	"time"

	"github.com/akinalp/grocery-planner/models"
)

// RemoteListStore, oturumdaki kullanıcının tek aktif listesi.
// Liste id'si taşınmaz: kapsam her zaman "mevcut kullanıcı"dır.
type RemoteListStore interface {
	// GetActiveList, kullanıcının aktif listesi; hiç yoksa (nil, nil).
	GetActiveList(ctx context.Context) (*models.GroceryList, error)
	SaveItems(ctx context.Context, items []models.GroceryItem) error
	ClearList(ctx context.Context) error
}

// NamedListStore, isimli liste snapshot'ları.
// Transport hatası olmasa bile çağıran Envelope.Success'i kontrol etmelidir.
type NamedListStore interface {
	Save(ctx context.Context, req models.SaveGroceryListRequest) (models.Envelope[models.GroceryList], error)
	Get(ctx context.Context, id string) (models.Envelope[models.GroceryList], error)
	Delete(ctx context.Context, id string) (models.Envelope[struct{}], error)
	List(ctx context.Context) (models.Envelope[[]models.GroceryList], error)
}

// FallbackStore, cihaza bağlı kalıcı key-value store.
type FallbackStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// AuthContext, oturumdaki kullanıcıyı senkron olarak verir; oturum yoksa nil.
type AuthContext interface {
	CurrentUser() *models.AuthUser
}

// FallbackRecord, fallback store'a yazılan JSON kaydı.
type FallbackRecord struct {
	Items   []models.GroceryItem `json:"items"`
	UserID  string               `json:"userId"`
	SavedAt time.Time            `json:"savedAt"`
}

const (
	fallbackKeyPrefix = "groceryList_"
	anonymousUser     = "anonymous"
)

// FallbackKey, kullanıcıya ait fallback anahtarı; boş id anonim anahtara düşer.
func FallbackKey(userID string) string {
	if userID == "" {
		userID = anonymousUser
	}
	return fallbackKeyPrefix + userID
}
