// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config struct'ı tüm ayarları tek bir yerde toplar, böylece
// her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Spoonacular SpoonacularConfig
	CORS        CORSConfig
	Email       EmailConfig
	RateLimit   RateLimitConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
	Env  string // "development" | "production"
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/grocery.db)
}

// JWTConfig, JWT token ayarları.
type JWTConfig struct {
	Secret             string // Token imzalama anahtarı — GİZLİ TUTULMALI
	AccessTokenExpiry  int    // Dakika cinsinden (varsayılan: 15)
	RefreshTokenExpiry int    // Gün cinsinden (varsayılan: 7)
}

// SpoonacularConfig, tarif arama API'si ayarları.
type SpoonacularConfig struct {
	APIKey   string
	BaseURL  string
	CacheTTL time.Duration // Arama sonuçlarının bellekte tutulma süresi
	Timeout  time.Duration
}

// CORSConfig, izin verilen frontend origin'leri.
type CORSConfig struct {
	Origins []string
}

// EmailConfig, Resend ile doğrulama/kurtarma email'leri.
// APIKey boşsa email gönderimi devre dışıdır (development).
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string
	AppURL       string // Email'deki linklerin base URL'i (frontend)
}

// RateLimitConfig, login brute-force koruması ayarları.
type RateLimitConfig struct {
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
func Load() (*Config, error) {
	// .env dosyası yoksa hata vermez, sessizce devam eder.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "3001"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("SPOONACULAR_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SPOONACULAR_CACHE_TTL: %w", err)
	}

	upstreamTimeout, err := time.ParseDuration(getEnv("SPOONACULAR_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SPOONACULAR_TIMEOUT: %w", err)
	}

	loginAttempts, err := strconv.Atoi(getEnv("LOGIN_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_MAX_ATTEMPTS: %w", err)
	}

	loginWindow, err := time.ParseDuration(getEnv("LOGIN_WINDOW", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_WINDOW: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	// Tarif arama tüm uygulamanın ana özelliği — key olmadan başlamanın anlamı yok.
	apiKey := getEnv("SPOONACULAR_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("SPOONACULAR_API_KEY environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: port,
			Env:  getEnv("NODE_ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/grocery.db"),
		},
		JWT: JWTConfig{
			Secret:             jwtSecret,
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: refreshExpiry,
		},
		Spoonacular: SpoonacularConfig{
			APIKey:   apiKey,
			BaseURL:  strings.TrimRight(getEnv("SPOONACULAR_BASE_URL", "https://api.spoonacular.com"), "/"),
			CacheTTL: cacheTTL,
			Timeout:  upstreamTimeout,
		},
		CORS: CORSConfig{
			Origins: splitList(getEnv("CORS_ORIGIN", "http://localhost:5173")),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("RESEND_FROM", "noreply@grocery-planner.app"),
			AppURL:       strings.TrimRight(getEnv("APP_URL", "http://localhost:5173"), "/"),
		},
		RateLimit: RateLimitConfig{
			LoginMaxAttempts: loginAttempts,
			LoginWindow:      loginWindow,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:3001").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// splitList, virgülle ayrılmış listeyi parçalar, boş elemanları atar.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
