package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/akinalp/grocery-planner/models"
)

const (
	defaultConfigPath   = "~/.config/grocer/config.toml"
	defaultAPIURL       = "http://localhost:3001"
	defaultTimeout      = 10 * time.Second
	defaultFallbackPath = "~/.local/share/grocer/fallback.db"
)

// Config, ~/.config/grocer/config.toml içeriği.
// Session login sonrası yazılır, logout'ta silinir.
type Config struct {
	APIURL       string         `toml:"api_url"`
	Timeout      string         `toml:"timeout,omitempty"`
	FallbackPath string         `toml:"fallback_path"`
	FallbackKey  string         `toml:"fallback_encryption_key,omitempty"`
	Session      *SessionConfig `toml:"session,omitempty"`
}

// SessionConfig, kalıcı oturum bilgisi.
type SessionConfig struct {
	AccessToken  string `toml:"access_token"`
	RefreshToken string `toml:"refresh_token"`
	UserID       string `toml:"user_id"`
	Email        string `toml:"email"`
}

// loadConfig, dosya yoksa varsayılanları döner.
func loadConfig(path string) (Config, error) {
	cfg := Config{APIURL: defaultAPIURL, FallbackPath: defaultFallbackPath}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if strings.TrimSpace(cfg.APIURL) == "" {
		cfg.APIURL = defaultAPIURL
	}
	if strings.TrimSpace(cfg.FallbackPath) == "" {
		cfg.FallbackPath = defaultFallbackPath
	}
	if _, err := cfg.timeout(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// saveConfig, dizinleri oluşturarak yazar. Token içerdiği için 0600.
func saveConfig(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) timeout() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

func (s *SessionConfig) authSession() *models.AuthSession {
	if s == nil || s.AccessToken == "" {
		return nil
	}
	return &models.AuthSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		User:         models.AuthUser{ID: s.UserID, Email: s.Email},
	}
}

func sessionConfig(s *models.AuthSession) *SessionConfig {
	if s == nil {
		return nil
	}
	return &SessionConfig{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		UserID:       s.User.ID,
		Email:        s.User.Email,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
