// Package apiclient, grocery-planner API server'ının HTTP client'ı.
//
// Client, grocery.Synchronizer'ın uzak collaborator'larını (aktif liste,
// isimli listeler, auth context) tek bir oturum üzerinden karşılar.
// Yanıt status'ları domain error'larına çevrilir:
//
//	401 → pkg.ErrAuthRequired
//	404 → pkg.ErrNotFound
//	transport hatası / 5xx → pkg.ErrRemoteUnavailable
//	diğer → pkg.ErrInternal
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
)

// maxResponseBytes, okunacak en büyük yanıt gövdesi.
const maxResponseBytes = 4 << 20

// StatusError, 2xx dışı bir API yanıtı. Unwrap ile domain sentinel'ine iner.
type StatusError struct {
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}

// Client, oturum bilgisini taşıyan thread-safe API client'ı.
//
// Synchronizer'ın push goroutine'leri ile CLI komutu aynı anda okuyabilir,
// refresh ise yazar; bu yüzden session RWMutex arkasında.
// onSession callback'i kilit bırakıldıktan sonra çağrılır, callback içinde
// Session() okumak kilitlenmez.
type Client struct {
	baseURL *url.URL
	http    *http.Client

	mu        sync.RWMutex
	session   *models.AuthSession
	onSession func(*models.AuthSession)
}

// New, baseURL (ör: http://localhost:3001) ile client oluşturur.
// timeout, her HTTP isteğinin üst sınırıdır.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", baseURL)
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// SetSession, kayıtlı bir oturumu yükler (ör: CLI config'inden).
func (c *Client) SetSession(session *models.AuthSession) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
}

// Session, mevcut oturum; yoksa nil.
func (c *Client) Session() *models.AuthSession {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// OnSessionChange, oturum değiştiğinde (login, refresh, logout) çağrılır.
func (c *Client) OnSessionChange(fn func(*models.AuthSession)) {
	c.mu.Lock()
	c.onSession = fn
	c.mu.Unlock()
}

// CurrentUser, grocery.AuthContext'i karşılar.
func (c *Client) CurrentUser() *models.AuthUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	user := c.session.User
	return &user
}

func (c *Client) setSession(session *models.AuthSession) {
	c.mu.Lock()
	c.session = session
	fn := c.onSession
	c.mu.Unlock()

	if fn != nil {
		fn(session)
	}
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken
}

func (c *Client) refreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.RefreshToken
}

// call, isteği gönderir ve yanıt zarfını çözer.
//
// Access token kısa ömürlüdür (varsayılan 15 dk); CLI her çalıştırmada config'ten
// eski bir token yükler. 401 gelirse bir kez refresh edip isteği tekrarlar.
// /api/auth/ yolları hariç tutulur: refresh'in kendisi 401 dönerse döngüye girmemeli.
// Refresh de başarısızsa çağırana ilk hata (ErrAuthRequired) döner.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (models.Envelope[T], error) {
	env, err := doCall[T](ctx, c, method, path, body)
	if !errors.Is(err, pkg.ErrAuthRequired) || strings.HasPrefix(path, "/api/auth/") || c.refreshToken() == "" {
		return env, err
	}

	if rerr := c.Refresh(ctx); rerr != nil {
		return env, err
	}
	return doCall[T](ctx, c, method, path, body)
}

func doCall[T any](ctx context.Context, c *Client, method, path string, body any) (models.Envelope[T], error) {
	var env models.Envelope[T]

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return env, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return env, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return env, fmt.Errorf("%w: %s %s: %v", pkg.ErrRemoteUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return env, fmt.Errorf("%w: reading response: %v", pkg.ErrRemoteUnavailable, err)
	}

	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if decodeErr != nil {
			return env, fmt.Errorf("%w: invalid response body: %v", pkg.ErrInternal, decodeErr)
		}
		return env, nil
	}

	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return env, &StatusError{Status: resp.StatusCode, Message: msg, kind: kindForStatus(resp.StatusCode)}
}

// kindForStatus, HTTP durumunu synchronizer'ın anladığı sentinel'e çevirir.
// 5xx "sunucu yok" sayılır: synchronizer offline'a geçip fallback'e yazar.
// Diğer 4xx'ler isteğin kendisiyle ilgilidir, tekrar denemek düzeltmez.
func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return pkg.ErrAuthRequired
	case status == http.StatusNotFound:
		return pkg.ErrNotFound
	case status >= 500:
		return pkg.ErrRemoteUnavailable
	default:
		return pkg.ErrInternal
	}
}

// softFailure, sunucunun success=false zarfıyla reddettiği istek mi?
// İsimli liste çağrılarında bu durum hata değil, zarf olarak döner.
func softFailure(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Status >= 400 && se.Status < 500 &&
		se.Status != http.StatusUnauthorized && se.Status != http.StatusNotFound
}

func unsuccessful(op, errMsg, message string) error {
	msg := errMsg
	if msg == "" {
		msg = message
	}
	return fmt.Errorf("%w: %s: %s", pkg.ErrInternal, op, msg)
}
