package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/repository"
)

// ProfileService, kullanıcı profili ve hesap silme işlemleri.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.ProfileResponse, error)
	Update(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.ProfileResponse, error)
	// GetUser, başka bir kullanıcının bilgisi istenirse pkg.ErrForbidden döner.
	GetUser(ctx context.Context, requesterID, targetID string) (*models.ProfileResponse, error)
	// DeleteAccount, hesabı ve FK cascade ile tüm verisini siler.
	DeleteAccount(ctx context.Context, userID string) error
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
}

// NewProfileService, constructor.
func NewProfileService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, pkg.ErrNotFound) {
		return nil, err
	}

	// Profil hiç kaydedilmemişse nil döner; frontend varsayılanları gösterir.
	return &models.ProfileResponse{User: user.Public(), Profile: profile}, nil
}

func (s *profileService) Update(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.Upsert(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	return &models.ProfileResponse{User: user.Public(), Profile: profile}, nil
}

func (s *profileService) GetUser(ctx context.Context, requesterID, targetID string) (*models.ProfileResponse, error) {
	if requesterID != targetID {
		return nil, fmt.Errorf("%w: access denied", pkg.ErrForbidden)
	}
	return s.Get(ctx, targetID)
}

func (s *profileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
