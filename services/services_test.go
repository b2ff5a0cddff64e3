package services

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akinalp/grocery-planner/database"
	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/repository"
	"github.com/akinalp/grocery-planner/ws"
)

// testRepos, gerçek SQLite (temp dir) üzerinde repository seti.
type testRepos struct {
	user         repository.UserRepository
	session      repository.SessionRepository
	verification repository.VerificationRepository
	profile      repository.ProfileRepository
	grocery      repository.GroceryListRepository
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "svc.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &testRepos{
		user:         repository.NewSQLiteUserRepo(db.Conn),
		session:      repository.NewSQLiteSessionRepo(db.Conn),
		verification: repository.NewSQLiteVerificationRepo(db.Conn),
		profile:      repository.NewSQLiteProfileRepo(db.Conn),
		grocery:      repository.NewSQLiteGroceryListRepo(db.Conn),
	}
}

func (r *testRepos) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, r.user.Create(context.Background(), user))
	return user
}

type publishedEvent struct {
	userID string
	event  ws.Event
}

// recordingPublisher, yayınlanan WS event'lerini biriktirir.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) BroadcastToUser(userID string, event ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{userID, event})
}

func (p *recordingPublisher) ops() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.event.Op
	}
	return out
}

// recordingSender, gönderilen email token'larını tutar.
type recordingSender struct {
	mu           sync.Mutex
	verification map[string]string
	recovery     map[string]string
}

func newRecordingSender() *recordingSender {
	return &recordingSender{verification: map[string]string{}, recovery: map[string]string{}}
}

func (s *recordingSender) SendVerification(_ context.Context, to, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verification[to] = token
	return nil
}

func (s *recordingSender) SendRecovery(_ context.Context, to, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recovery[to] = token
	return nil
}
