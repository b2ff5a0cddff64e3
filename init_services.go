// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/akinalp/grocery-planner/config"
	"github.com/akinalp/grocery-planner/pkg/email"
	"github.com/akinalp/grocery-planner/pkg/ratelimit"
	"github.com/akinalp/grocery-planner/pkg/spoonacular"
	"github.com/akinalp/grocery-planner/services"
	"github.com/akinalp/grocery-planner/ws"
)

// recoverLimitPerHour, aynı adrese saatte gönderilebilecek kurtarma email'i sayısı.
const recoverLimitPerHour = 3

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth        services.AuthService
	Profile     services.ProfileService
	Recipe      services.RecipeService
	GroceryList services.GroceryListService
	SavedList   services.SavedListService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login   *ratelimit.Limiter
	Recover *ratelimit.Limiter
}

// Stop, limiter'ların cleanup goroutine'lerini durdurur.
func (l *RateLimiters) Stop() {
	l.Login.Stop()
	l.Recover.Stop()
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
func initServices(repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, *RateLimiters, error) {
	// ─── Email (opsiyonel) ───
	// Resend key yoksa linkler loga yazılır; development'ta hesap yine doğrulanabilir.
	var emailSender email.Sender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		emailSender = email.NewLogSender(cfg.Email.AppURL)
		log.Println("[main] email service disabled (RESEND_API_KEY not set), links will be logged")
	}

	// ─── Spoonacular ───
	recipeClient, err := spoonacular.NewClient(cfg.Spoonacular.BaseURL, cfg.Spoonacular.APIKey, cfg.Spoonacular.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create spoonacular client: %w", err)
	}

	svcs := &Services{
		Auth: services.NewAuthService(
			repos.User, repos.Session, repos.Verification, emailSender,
			cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
		),
		Profile:     services.NewProfileService(repos.User, repos.Profile, repos.Session),
		Recipe:      services.NewRecipeService(recipeClient, cfg.Spoonacular.CacheTTL),
		GroceryList: services.NewGroceryListService(repos.GroceryList, hub),
		SavedList:   services.NewSavedListService(repos.GroceryList, hub),
	}

	limiters := &RateLimiters{
		Login:   ratelimit.New(cfg.RateLimit.LoginMaxAttempts, cfg.RateLimit.LoginWindow),
		Recover: ratelimit.New(recoverLimitPerHour, time.Hour),
	}

	return svcs, limiters, nil
}
