package apiclient

import (
	"context"
	"net/http"

	"github.com/akinalp/grocery-planner/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register, yeni hesap açar ve oturumu başlatır.
func (c *Client) Register(ctx context.Context, email, password string) (*models.AuthSession, error) {
	return c.authenticate(ctx, "/api/auth/register", credentials{Email: email, Password: password})
}

// Login, email + şifre ile oturum açar.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthSession, error) {
	return c.authenticate(ctx, "/api/auth/login", credentials{Email: email, Password: password})
}

// Refresh, refresh token ile yeni token çifti alır (rotation).
func (c *Client) Refresh(ctx context.Context) error {
	_, err := c.authenticate(ctx, "/api/auth/refresh", refreshRequest{RefreshToken: c.refreshToken()})
	return err
}

// Logout, sunucudaki oturumu siler ve yerel oturumu temizler.
// Sunucu hatası olsa bile yerel oturum temizlenir.
func (c *Client) Logout(ctx context.Context) error {
	token := c.refreshToken()
	defer c.setSession(nil)

	if token == "" {
		return nil
	}
	_, err := doCall[struct{}](ctx, c, http.MethodPost, "/api/auth/logout", refreshRequest{RefreshToken: token})
	return err
}

// Recover, hesap kurtarma email'i ister.
func (c *Client) Recover(ctx context.Context, email string) error {
	_, err := doCall[struct{}](ctx, c, http.MethodPost, "/api/auth/recover", map[string]string{"email": email})
	return err
}

// Profile, oturumdaki kullanıcının profili.
func (c *Client) Profile(ctx context.Context) (*models.ProfileResponse, error) {
	env, err := call[models.ProfileResponse](ctx, c, http.MethodGet, "/api/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*models.AuthSession, error) {
	env, err := doCall[models.AuthSession](ctx, c, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, unsuccessful(path, env.Error, env.Message)
	}

	session := env.Data
	c.setSession(&session)
	return &session, nil
}
