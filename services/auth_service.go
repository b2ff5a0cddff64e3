// Package services, business logic katmanını barındırır.
//
// Handler (HTTP) ile Repository (DB) arasında oturur. Service ASLA
// http.Request/Response bilmez ve ASLA doğrudan SQL çalıştırmaz; sadece
// domain modelleri alır/verir, repository interface'lerini kullanır.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/pkg/email"
	"github.com/akinalp/grocery-planner/repository"
)

const (
	bcryptCost = 12

	signupTokenTTL   = 24 * time.Hour
	recoveryTokenTTL = time.Hour
)

// AuthService interface'i, handler ve middleware buna bağımlıdır.
type AuthService interface {
	Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthSession, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthSession, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthSession, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	// GetUser, middleware'in token'daki kullanıcıyı DB'den doğrulaması için.
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// Verify, email'deki tek kullanımlık token'ı tüketir.
	Verify(ctx context.Context, req *models.VerifyRequest) (*models.VerifyResponse, error)
	// Recover, hesap kurtarma email'i gönderir. Email kayıtlı değilse de nil
	// döner: yanıttan bir adresin kayıtlı olup olmadığı anlaşılmamalı.
	Recover(ctx context.Context, req *models.RecoverRequest) error
}

type authService struct {
	userRepo         repository.UserRepository
	sessionRepo      repository.SessionRepository
	verificationRepo repository.VerificationRepository
	emailSender      email.Sender
	jwtSecret        []byte
	accessExp        time.Duration
	refreshExp       time.Duration
	now              func() time.Time
}

// NewAuthService, constructor.
// emailSender nil olabilir: doğrulama email'i gönderilmez, hesap yine oluşur.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	verificationRepo repository.VerificationRepository,
	emailSender email.Sender,
	jwtSecret string,
	accessExpMinutes int,
	refreshExpDays int,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		verificationRepo: verificationRepo,
		emailSender:      emailSender,
		jwtSecret:        []byte(jwtSecret),
		accessExp:        time.Duration(accessExpMinutes) * time.Minute,
		refreshExp:       time.Duration(refreshExpDays) * 24 * time.Hour,
		now:              time.Now,
	}
}

// Register, yeni kullanıcı oluşturur, doğrulama email'i gönderir ve oturum açar.
// Email gönderimi başarısız olursa kayıt geri alınmaz; kullanıcı Recover ile
// yeni link isteyebilir.
func (s *authService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthSession, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	if err := s.sendToken(ctx, user, models.VerificationSignup); err != nil {
		log.Printf("[auth] failed to send verification email to user %s: %v", user.ID, err)
	}

	return s.generateSession(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthSession, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
	}

	return s.generateSession(ctx, user)
}

// RefreshToken, refresh token'ı döndürür (rotation): eski oturum silinir,
// yeni token çifti üretilir. Çalınan bir refresh token en fazla bir kez kullanılabilir.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthSession, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", pkg.ErrBadRequest)
	}

	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := s.sessionRepo.DeleteByID(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to delete old session: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		return nil, fmt.Errorf("%w: refresh token expired", pkg.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return s.generateSession(ctx, user)
}

// Logout, refresh token'ın oturumunu siler. Bilinmeyen token hata değildir.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.sessionRepo.DeleteByID(ctx, session.ID)
}

func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Verify, signup token'ı email'i doğrular; recovery token'ı da email'i
// doğrular (link'e tıklayabilen adresin sahibidir) ve oturum açar.
// Her iki durumda da token tek kullanımlıktır.
func (s *authService) Verify(ctx context.Context, req *models.VerifyRequest) (*models.VerifyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	record, err := s.verificationRepo.GetByTokenHash(ctx, hashToken(req.TokenHash), req.Type)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid or already used token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := s.verificationRepo.DeleteByID(ctx, record.ID); err != nil {
		return nil, err
	}

	if record.Expired(s.now()) {
		return nil, fmt.Errorf("%w: token expired", pkg.ErrUnauthorized)
	}

	if err := s.userRepo.ConfirmEmail(ctx, record.UserID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}

	session, err := s.generateSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &models.VerifyResponse{User: user.Public(), Session: session}, nil
}

func (s *authService) Recover(ctx context.Context, req *models.RecoverRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Fırsat temizliği: ayrı bir cron job'a gerek kalmaz.
	if err := s.verificationRepo.DeleteExpired(ctx); err != nil {
		log.Printf("[auth] failed to delete expired verification tokens: %v", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.sendToken(ctx, user, models.VerificationRecovery); err != nil {
		return fmt.Errorf("failed to send recovery email: %w", err)
	}

	return nil
}

// ─── Private Helpers ───

// sendToken, eski token'ları geçersiz kılar, yenisini üretir ve email'ler.
func (s *authService) sendToken(ctx context.Context, user *models.User, tokenType models.VerificationType) error {
	if s.emailSender == nil {
		return nil
	}

	if err := s.verificationRepo.DeleteByUser(ctx, user.ID, tokenType); err != nil {
		return err
	}

	plain, err := randomToken()
	if err != nil {
		return err
	}

	ttl := signupTokenTTL
	if tokenType == models.VerificationRecovery {
		ttl = recoveryTokenTTL
	}

	record := &models.VerificationToken{
		UserID:    user.ID,
		TokenHash: hashToken(plain),
		Type:      tokenType,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.verificationRepo.Create(ctx, record); err != nil {
		return err
	}

	if tokenType == models.VerificationRecovery {
		return s.emailSender.SendRecovery(ctx, user.Email, plain)
	}
	return s.emailSender.SendVerification(ctx, user.Email, plain)
}

func (s *authService) generateSession(ctx context.Context, user *models.User) (*models.AuthSession, error) {
	now := s.now()
	accessClaims := &models.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "grocery-planner",
		},
	}

	accessString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshString, err := randomToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: refreshString,
		ExpiresAt:    now.Add(s.refreshExp),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.AuthSession{
		AccessToken:  accessString,
		RefreshToken: refreshString,
		ExpiresIn:    int64(s.accessExp.Seconds()),
		User:         user.Public(),
	}, nil
}

// randomToken, 32 byte kriptografik rastgele değerin hex hali.
func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashToken, DB'de saklanan SHA256 hex hash.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
