package services

import (
	"context"
	"fmt"
	"time"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/repository"
	"github.com/akinalp/grocery-planner/ws"
)

// SavedListService, isimli liste snapshot'ları.
// Snapshot oluşturulduktan sonra değişmez; aktif listeye yüklemek client'ın işidir.
type SavedListService interface {
	Save(ctx context.Context, userID string, req *models.SaveGroceryListRequest) (*models.GroceryList, error)
	Get(ctx context.Context, userID, listID string) (*models.GroceryList, error)
	List(ctx context.Context, userID string) ([]models.GroceryList, error)
	Delete(ctx context.Context, userID, listID string) error
}

type savedListService struct {
	repo repository.GroceryListRepository
	hub  ws.EventPublisher
	now  func() time.Time
}

// NewSavedListService, constructor.
func NewSavedListService(repo repository.GroceryListRepository, hub ws.EventPublisher) SavedListService {
	return &savedListService{repo: repo, hub: hub, now: time.Now}
}

func (s *savedListService) Save(ctx context.Context, userID string, req *models.SaveGroceryListRequest) (*models.GroceryList, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	savedAt := s.now().UTC()
	if req.SavedAt != nil {
		savedAt = req.SavedAt.UTC()
	}

	name := req.Name
	if name == "" {
		name = "Grocery List " + savedAt.Format("1/2/2006")
	}

	list := &models.GroceryList{
		UserID:  userID,
		Name:    name,
		Items:   req.Items,
		SavedAt: &savedAt,
	}
	if err := s.repo.CreateSaved(ctx, list); err != nil {
		return nil, err
	}

	s.hub.BroadcastToUser(userID, ws.Event{Op: ws.OpSavedListCreate, Data: list})
	return list, nil
}

func (s *savedListService) Get(ctx context.Context, userID, listID string) (*models.GroceryList, error) {
	return s.repo.GetSaved(ctx, userID, listID)
}

func (s *savedListService) List(ctx context.Context, userID string) ([]models.GroceryList, error) {
	return s.repo.ListSaved(ctx, userID)
}

func (s *savedListService) Delete(ctx context.Context, userID, listID string) error {
	if err := s.repo.DeleteSaved(ctx, userID, listID); err != nil {
		return err
	}

	s.hub.BroadcastToUser(userID, ws.Event{
		Op:   ws.OpSavedListDelete,
		Data: ws.SavedListDeleteData{ID: listID},
	})
	return nil
}
