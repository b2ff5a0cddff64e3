// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
//   - Hub: Tüm bağlantıları kullanıcı bazında tutan merkezi yapı
//   - Client: Her WebSocket bağlantısını temsil eder
//   - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
//  1. Kullanıcı listeyi değiştirir → HTTP PUT → Service → DB
//  2. Service, Hub.BroadcastToUser ile kullanıcının TÜM bağlantılarına event yollar
//  3. Diğer cihaz/tab'lar listeyi yeniden yükler
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Seq: Her outbound event'e verilen artan sayı. Client eksik event'i
// (ör. 5'ten sonra 7) fark edip tam yeniden yükleme yapabilir.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir
)

// Server → Client operasyonları
const (
	OpReady        = "ready"
	OpHeartbeatAck = "heartbeat_ack"

	OpGroceryListUpdate = "grocery_list_update" // Aktif listenin item'ları değişti (tam liste)
	OpGroceryListClear  = "grocery_list_clear"  // Aktif liste boşaltıldı
	OpSavedListCreate   = "saved_list_create"   // Yeni isimli snapshot
	OpSavedListDelete   = "saved_list_delete"   // Snapshot silindi
)

// ReadyData, bağlantı kurulunca gönderilen ilk event'in payload'ı.
type ReadyData struct {
	UserID string `json:"user_id"`
}

// GroceryListUpdateData, grocery_list_update payload'ı.
type GroceryListUpdateData struct {
	ListID string `json:"list_id"`
	Items  any    `json:"items"`
}

// GroceryListClearData, grocery_list_clear payload'ı.
type GroceryListClearData struct {
	ListID string `json:"list_id"`
}

// SavedListDeleteData, saved_list_delete payload'ı.
type SavedListDeleteData struct {
	ID string `json:"id"`
}
