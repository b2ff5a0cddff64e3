package grocery

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akinalp/grocery-planner/models"
)

const callTimeout = 2 * time.Second

// Uzak store fake'i: her çağrı Calls kanalına düşer, test Assert* ile
// cevaplar. Cevap kanalı çağrıya aittir; eşzamanlı push'lar karışmaz.
type getActiveCall struct {
	reply chan getActiveResp
}

type getActiveResp struct {
	list *models.GroceryList
	err  error
}

type saveItemsCall struct {
	items []models.GroceryItem
	reply chan error
}

type clearCall struct {
	reply chan error
}

type fakeRemote struct {
	t     *testing.T
	Calls chan any
}

func newFakeRemote(t *testing.T) *fakeRemote {
	return &fakeRemote{t: t, Calls: make(chan any)}
}

func (f *fakeRemote) GetActiveList(context.Context) (*models.GroceryList, error) {
	call := &getActiveCall{reply: make(chan getActiveResp, 1)}
	f.Calls <- call
	resp := <-call.reply
	return resp.list, resp.err
}

func (f *fakeRemote) SaveItems(_ context.Context, items []models.GroceryItem) error {
	call := &saveItemsCall{items: items, reply: make(chan error, 1)}
	f.Calls <- call
	return <-call.reply
}

func (f *fakeRemote) ClearList(context.Context) error {
	call := &clearCall{reply: make(chan error, 1)}
	f.Calls <- call
	return <-call.reply
}

func (f *fakeRemote) next() any {
	f.t.Helper()
	select {
	case call := <-f.Calls:
		return call
	case <-time.After(callTimeout):
		f.t.Fatal("expected a remote call, got none")
		return nil
	}
}

func (f *fakeRemote) AssertGetActiveList(list *models.GroceryList, err error) {
	f.t.Helper()
	call, ok := f.next().(*getActiveCall)
	if !ok {
		f.t.Fatalf("expected GetActiveList call")
	}
	call.reply <- getActiveResp{list: list, err: err}
}

// AssertSaveItems, SaveItems çağrısını cevaplar ve gönderilen item'ları döner.
func (f *fakeRemote) AssertSaveItems(err error) []models.GroceryItem {
	f.t.Helper()
	call, ok := f.next().(*saveItemsCall)
	if !ok {
		f.t.Fatalf("expected SaveItems call")
	}
	call.reply <- err
	return call.items
}

// TakeSaveItems, SaveItems çağrısını cevaplamadan alır. Push, test
// call.reply'a yazana kadar bekler; çakışan push'ların bitiş sırası böyle kurulur.
func (f *fakeRemote) TakeSaveItems() *saveItemsCall {
	f.t.Helper()
	call, ok := f.next().(*saveItemsCall)
	if !ok {
		f.t.Fatalf("expected SaveItems call")
	}
	return call
}

func (f *fakeRemote) AssertClearList(err error) {
	f.t.Helper()
	call, ok := f.next().(*clearCall)
	if !ok {
		f.t.Fatalf("expected ClearList call")
	}
	call.reply <- err
}

func (f *fakeRemote) AssertNoCall() {
	f.t.Helper()
	select {
	case call := <-f.Calls:
		f.t.Fatalf("unexpected remote call: %T", call)
	case <-time.After(50 * time.Millisecond):
	}
}

// AutoReply, test bitene kadar her SaveItems'ı err ile cevaplar.
func (f *fakeRemote) AutoReply(err error) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case call := <-f.Calls:
				if c, ok := call.(*saveItemsCall); ok {
					c.reply <- err
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

type memFallback struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
}

func newMemFallback() *memFallback {
	return &memFallback{data: make(map[string][]byte)}
}

func (m *memFallback) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memFallback) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memFallback) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memFallback) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func (m *memFallback) getCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets
}

type fakeAuth struct {
	mu   sync.Mutex
	user *models.AuthUser
}

func (a *fakeAuth) CurrentUser() *models.AuthUser {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *fakeAuth) set(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id == "" {
		a.user = nil
		return
	}
	a.user = &models.AuthUser{ID: id, Email: id + "@example.com"}
}

type fakeNamed struct {
	mu      sync.Mutex
	saved   []models.SaveGroceryListRequest
	saveEnv models.Envelope[models.GroceryList]
	getEnv  models.Envelope[models.GroceryList]
	err     error
}

func (f *fakeNamed) Save(_ context.Context, req models.SaveGroceryListRequest) (models.Envelope[models.GroceryList], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, req)
	return f.saveEnv, f.err
}

func (f *fakeNamed) Get(_ context.Context, _ string) (models.Envelope[models.GroceryList], error) {
	return f.getEnv, f.err
}

func (f *fakeNamed) Delete(context.Context, string) (models.Envelope[struct{}], error) {
	return models.Envelope[struct{}]{Success: true}, f.err
}

func (f *fakeNamed) List(context.Context) (models.Envelope[[]models.GroceryList], error) {
	return models.Envelope[[]models.GroceryList]{Success: true}, f.err
}
