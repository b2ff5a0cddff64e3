package grocery

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
)

// itemSeq, aynı milisaniyede üretilen id'leri ayırır. Süreç boyunca artar.
var itemSeq atomic.Uint64

// SyncState, senkronizasyon sağlığı. UI okur, sadece Synchronizer yazar.
type SyncState struct {
	IsLoading     bool
	IsOffline     bool
	LastSyncTime  *time.Time
	CurrentUserID string
}

// Options, Synchronizer bağımlılıkları. Logger ve Now opsiyoneldir.
type Options struct {
	Remote   RemoteListStore
	Named    NamedListStore
	Fallback FallbackStore
	Auth     AuthContext
	Logger   *zap.Logger
	Now      func() time.Time
}

// Synchronizer, bellekteki grocery listesinin sahibi.
type Synchronizer struct {
	remote   RemoteListStore
	named    NamedListStore
	fallback FallbackStore
	auth     AuthContext
	logger   *zap.Logger
	now      func() time.Time

	mu    sync.Mutex
	items []models.GroceryItem
	state SyncState

	// gen, oturum kuşağı. ClearUserData her çağrıda artırır; önceki kuşaktan
	// kalan push'lar bittiğinde state'e ve fallback'e dokunmaz. Aksi halde
	// çıkış yapan kullanıcının listesi geç dönen bir hata ile diske geri yazılır.
	gen uint64

	// fallbackMu, fallback'e yazma ve silmeyi sıralar. Yazılan içerik kilit
	// altında bellekten okunur; böylece en son yazan her zaman güncel listeyi yazar.
	fallbackMu sync.Mutex

	// pending, uçuştaki reactive push goroutine'leri.
	pending sync.WaitGroup
}

// New, boş listeyle bir Synchronizer oluşturur.
func New(opts Options) *Synchronizer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Synchronizer{
		remote:   opts.Remote,
		named:    opts.Named,
		fallback: opts.Fallback,
		auth:     opts.Auth,
		logger:   logger.Named("grocery"),
		now:      now,
		items:    []models.GroceryItem{},
	}
}

// Items, render için listenin kopyası.
func (s *Synchronizer) Items() []models.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// State, SyncState kopyası.
func (s *Synchronizer) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if st.LastSyncTime != nil {
		t := *st.LastSyncTime
		st.LastSyncTime = &t
	}
	return st
}

// Wait, uçuştaki reactive push'lar bitene kadar bekler.
//
// sync.WaitGroup kuralı gereği Wait sürerken yeni push başlatılmamalı:
// çağıran taraf önce mutasyonları durdurur (ör: CLI komutu bittiğinde),
// sonra Wait çağırır. Wait dönünce Synchronizer tekrar kullanılabilir.
func (s *Synchronizer) Wait() {
	s.pending.Wait()
}

// AddIngredients, ham malzemeleri normalize edip listenin sonuna ekler.
func (s *Synchronizer) AddIngredients(raw []models.RawIngredient) {
	if len(raw) == 0 {
		return
	}

	ms := strconv.FormatInt(s.now().UnixMilli(), 10)

	s.mu.Lock()
	for _, r := range raw {
		id := "ingredient-" + ms + "-" + strconv.FormatUint(itemSeq.Add(1), 10)
		s.items = append(s.items, r.Normalize(id))
	}
	snapshot, loading, gen := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snapshot, loading, gen)
}

// ToggleItem, item'ın checked alanını çevirir. Bilinmeyen id sessizce yok sayılır.
func (s *Synchronizer) ToggleItem(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items[i].Checked = !s.items[i].Checked
	snapshot, loading, gen := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snapshot, loading, gen)
}

// RemoveItem, tek bir item'ı siler. Bilinmeyen id sessizce yok sayılır.
func (s *Synchronizer) RemoveItem(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	snapshot, loading, gen := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snapshot, loading, gen)
}

// ClearList, listeyi yerelde ve uzakta temizler.
// Uzak hata döndürülür ama yerel liste temiz kalır.
func (s *Synchronizer) ClearList(ctx context.Context) error {
	user := s.currentUser()
	if user == nil {
		return pkg.ErrAuthRequired
	}

	s.mu.Lock()
	s.items = []models.GroceryItem{}
	s.mu.Unlock()

	remoteErr := s.remote.ClearList(ctx)
	if remoteErr != nil {
		s.logger.Warn("remote clear failed", zap.String("user_id", user.ID), zap.Error(remoteErr))
	}

	s.fallbackMu.Lock()
	if err := s.fallback.Delete(ctx, FallbackKey(user.ID)); err != nil {
		s.logger.Warn("failed to delete fallback entry", zap.String("user_id", user.ID), zap.Error(err))
	}
	s.fallbackMu.Unlock()

	if remoteErr != nil {
		return fmt.Errorf("clear grocery list: %w", remoteErr)
	}
	return nil
}

// SaveList, mevcut listeyi isimli bir snapshot olarak kaydeder.
func (s *Synchronizer) SaveList(ctx context.Context, name string) (*models.GroceryList, error) {
	s.mu.Lock()
	items := cloneItems(s.items)
	s.mu.Unlock()

	savedAt := s.now().UTC()
	env, err := s.named.Save(ctx, models.SaveGroceryListRequest{
		Items:   items,
		Name:    name,
		SavedAt: &savedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("save grocery list: %w", err)
	}
	if !env.Success {
		return nil, envelopeError("save grocery list", env.Error, env.Message)
	}

	list := env.Data
	return &list, nil
}

// LoadSavedList, isimli bir snapshot'ı getirip aktif liste yapar.
func (s *Synchronizer) LoadSavedList(ctx context.Context, id string) (*models.GroceryList, error) {
	env, err := s.named.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load saved list %s: %w", id, err)
	}
	if !env.Success {
		return nil, envelopeError("load saved list "+id, env.Error, env.Message)
	}

	list := env.Data

	s.mu.Lock()
	s.items = cloneItems(list.Items)
	snapshot, loading, gen := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snapshot, loading, gen)
	return &list, nil
}

// LoadList, aktif listeyi uzak store'dan, olmazsa fallback'ten yükler.
// Hata döndürmez: sonuç sadece liste ve IsOffline üzerinden gözlenir.
func (s *Synchronizer) LoadList(ctx context.Context) {
	s.mu.Lock()
	s.state.IsLoading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state.IsLoading = false
		s.mu.Unlock()
	}()

	target := anonymousUser
	if user := s.currentUser(); user != nil {
		target = user.ID

		list, err := s.remote.GetActiveList(ctx)
		if err == nil {
			var items []models.GroceryItem
			if list != nil {
				items = list.Items
			}

			now := s.now()
			s.mu.Lock()
			s.items = cloneItems(items)
			s.state.LastSyncTime = &now
			s.state.IsOffline = false
			s.mu.Unlock()

			s.logger.Debug("grocery list loaded", zap.String("user_id", user.ID), zap.Int("items", len(items)))
			return
		}

		s.logger.Warn("remote load failed, reading fallback", zap.String("user_id", user.ID), zap.Error(err))
		s.mu.Lock()
		s.state.IsOffline = true
		s.mu.Unlock()
	}

	s.loadFallback(ctx, target)
}

// SyncNow, listeyi reactive yol dışında elle iter. Hata çağırana döner.
func (s *Synchronizer) SyncNow(ctx context.Context) error {
	user := s.currentUser()
	if user == nil {
		return pkg.ErrAuthRequired
	}

	s.mu.Lock()
	items := cloneItems(s.items)
	s.mu.Unlock()

	if err := s.remote.SaveItems(ctx, items); err != nil {
		s.mu.Lock()
		s.state.IsOffline = true
		s.mu.Unlock()
		return fmt.Errorf("sync grocery list: %w", err)
	}

	s.markSynced()
	return nil
}

// ClearUserData, oturum kapanışında kullanıcının yerel izini siler.
// Kullanıcı id'si sıfırlanmadan önce okunur, bu yüzden auth'tan önce çağrılmalı.
//
// Kuşak artırıldığı için hâlâ uçuşta olan push'lar sonuçlarını bırakır:
// geç dönen bir hata offline bayrağını geri açmaz, silinen kaydı geri yazmaz.
func (s *Synchronizer) ClearUserData(ctx context.Context) {
	s.mu.Lock()
	userID := s.state.CurrentUserID
	s.gen++
	s.items = []models.GroceryItem{}
	s.state.CurrentUserID = ""
	s.state.IsOffline = false
	s.state.LastSyncTime = nil
	s.mu.Unlock()

	// Liste hiç yüklenmediyse oturumdaki kullanıcıya bak.
	if userID == "" {
		if user := s.auth.CurrentUser(); user != nil {
			userID = user.ID
		}
	}
	if userID == "" {
		return
	}

	s.fallbackMu.Lock()
	defer s.fallbackMu.Unlock()

	if err := s.fallback.Delete(ctx, FallbackKey(userID)); err != nil {
		s.logger.Warn("failed to delete fallback entry", zap.String("user_id", userID), zap.Error(err))
	}
}

// emit, değişiklik sonrası reactive push'u başlatır.
//
// Yükleme sürerken atlanır: LoadList'in yazdığı liste zaten uzaktan ya da
// fallback'ten geldi, onu kullanıcı düzenlemesi gibi geri itmek uzak kaydı
// eski bir fallback ile ezebilir.
func (s *Synchronizer) emit(snapshot []models.GroceryItem, loading bool, gen uint64) {
	if loading {
		s.logger.Debug("push skipped while loading")
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.push(context.Background(), snapshot, gen)
	}()
}

// push, snapshot'ı uzak store'a yazar; başarısızsa offline işaretleyip fallback'e yazar.
// Retry ve kuyruk yok: sonraki değişiklik ya da LoadList senkronu yeniden kurar.
func (s *Synchronizer) push(ctx context.Context, items []models.GroceryItem, gen uint64) {
	user := s.userForGen(gen)
	if user == nil {
		return
	}

	if err := s.remote.SaveItems(ctx, items); err != nil {
		s.logger.Warn("push failed, writing fallback", zap.String("user_id", user.ID), zap.Error(err))
		s.writeFallback(ctx, user.ID, gen)
		return
	}

	now := s.now()
	s.mu.Lock()
	if gen == s.gen {
		s.state.LastSyncTime = &now
		s.state.IsOffline = false
	}
	s.mu.Unlock()
}

// writeFallback, offline işaretler ve bellekteki GÜNCEL listeyi fallback'e yazar.
//
// Push'un kendi snapshot'ı kullanılmaz: çakışan iki başarısız push'tan eskisi
// sonra biterse yeni kaydı daha kısa bir listeyle ezerdi. Kuşak değişmişse
// (kullanıcı çıkış yaptı) hiçbir şey yazılmaz.
func (s *Synchronizer) writeFallback(ctx context.Context, userID string, gen uint64) {
	s.fallbackMu.Lock()
	defer s.fallbackMu.Unlock()

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug("stale push result dropped", zap.String("user_id", userID))
		return
	}
	s.state.IsOffline = true
	items := cloneItems(s.items)
	s.mu.Unlock()

	data, err := json.Marshal(FallbackRecord{
		Items:   items,
		UserID:  userID,
		SavedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to encode fallback record", zap.Error(err))
		return
	}

	if err := s.fallback.Set(ctx, FallbackKey(userID), data); err != nil {
		s.logger.Error("failed to write fallback record", zap.String("user_id", userID), zap.Error(err))
	}
}

// loadFallback, kayıt hedef kullanıcıya aitse ve boş değilse listeyi değiştirir.
func (s *Synchronizer) loadFallback(ctx context.Context, userID string) {
	data, ok, err := s.fallback.Get(ctx, FallbackKey(userID))
	if err != nil {
		s.logger.Warn("failed to read fallback entry", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var rec FallbackRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("corrupt fallback entry ignored", zap.String("user_id", userID), zap.Error(err))
		return
	}

	// Paylaşılan cihazda başka kullanıcıdan kalmış veri kabul edilmez.
	// Anahtar zaten kullanıcıya özel; yine de kayıt elle kopyalanmış ya da
	// eski bir sürümün anonim anahtarından taşınmış olabilir.
	if rec.UserID != userID {
		s.logger.Warn("fallback entry belongs to another user, ignored",
			zap.String("user_id", userID), zap.String("entry_user_id", rec.UserID))
		return
	}
	if len(rec.Items) == 0 {
		return
	}

	s.mu.Lock()
	s.items = cloneItems(rec.Items)
	s.mu.Unlock()

	s.logger.Info("grocery list restored from fallback", zap.String("user_id", userID), zap.Int("items", len(rec.Items)))
}

// userForGen, currentUser gibi çalışır ama kuşak eskiyse nil döner ve
// CurrentUserID'yi yeniden yazmaz.
func (s *Synchronizer) userForGen(gen uint64) *models.AuthUser {
	user := s.auth.CurrentUser()
	if user == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	s.state.CurrentUserID = user.ID
	return user
}

// currentUser, auth context'ten kullanıcıyı okur ve state'e kaydeder.
func (s *Synchronizer) currentUser() *models.AuthUser {
	user := s.auth.CurrentUser()
	if user == nil {
		return nil
	}

	s.mu.Lock()
	s.state.CurrentUserID = user.ID
	s.mu.Unlock()
	return user
}

func (s *Synchronizer) markSynced() {
	now := s.now()
	s.mu.Lock()
	s.state.LastSyncTime = &now
	s.state.IsOffline = false
	s.mu.Unlock()
}

func (s *Synchronizer) snapshotLocked() ([]models.GroceryItem, bool, uint64) {
	return cloneItems(s.items), s.state.IsLoading, s.gen
}

func (s *Synchronizer) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []models.GroceryItem) []models.GroceryItem {
	out := make([]models.GroceryItem, len(items))
	copy(out, items)
	return out
}

// envelopeError, success=false yanıtını hataya çevirir.
func envelopeError(op, errMsg, message string) error {
	msg := errMsg
	if msg == "" {
		msg = message
	}
	if msg == "" {
		msg = "request was not successful"
	}
	return fmt.Errorf("%s: %w: %s", op, pkg.ErrInternal, msg)
}
