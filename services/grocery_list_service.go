package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/repository"
	"github.com/akinalp/grocery-planner/ws"
)

// GroceryListService, kullanıcının aktif (canlı) listesi.
//
// Client tarafındaki synchronizer her değişiklikte listenin TAMAMINI
// SaveItems ile gönderir; tekil item endpoint'leri (UpdateItem, DeleteItem)
// diğer client'lar içindir. Her yazma sonrası kullanıcının diğer
// bağlantılarına WS event'i gider.
type GroceryListService interface {
	// GetActive, aktif listeyi döner; yoksa boş bir tane oluşturur.
	GetActive(ctx context.Context, userID string) (*models.GroceryList, error)
	SaveItems(ctx context.Context, userID string, req *models.SaveItemsRequest) (*models.GroceryList, error)
	UpdateItem(ctx context.Context, userID, itemID string, req *models.UpdateGroceryItemRequest) (*models.GroceryItem, error)
	DeleteItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type groceryListService struct {
	repo repository.GroceryListRepository
	hub  ws.EventPublisher
}

// NewGroceryListService, constructor.
func NewGroceryListService(repo repository.GroceryListRepository, hub ws.EventPublisher) GroceryListService {
	return &groceryListService{repo: repo, hub: hub}
}

func (s *groceryListService) GetActive(ctx context.Context, userID string) (*models.GroceryList, error) {
	list, err := s.repo.GetActive(ctx, userID)
	if errors.Is(err, pkg.ErrNotFound) {
		return s.repo.CreateActive(ctx, userID)
	}
	return list, err
}

func (s *groceryListService) SaveItems(ctx context.Context, userID string, req *models.SaveItemsRequest) (*models.GroceryList, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	list, err := s.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceItems(ctx, list.ID, req.Items); err != nil {
		return nil, err
	}

	// Kaydedilen hali dön: varsayılan aisle gibi normalizasyonlar DB'de uygulanır.
	list, err = s.repo.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.publishUpdate(userID, list)
	return list, nil
}

func (s *groceryListService) UpdateItem(ctx context.Context, userID, itemID string, req *models.UpdateGroceryItemRequest) (*models.GroceryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	list, err := s.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, list.ID, itemID)
	if err != nil {
		return nil, err
	}

	req.Apply(item)
	if err := s.repo.UpdateItem(ctx, list.ID, item); err != nil {
		return nil, err
	}

	s.refreshAndPublish(ctx, userID)
	return item, nil
}

func (s *groceryListService) DeleteItem(ctx context.Context, userID, itemID string) error {
	list, err := s.GetActive(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, list.ID, itemID); err != nil {
		return err
	}

	s.refreshAndPublish(ctx, userID)
	return nil
}

func (s *groceryListService) Clear(ctx context.Context, userID string) error {
	list, err := s.GetActive(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.ClearItems(ctx, list.ID); err != nil {
		return err
	}

	s.hub.BroadcastToUser(userID, ws.Event{
		Op:   ws.OpGroceryListClear,
		Data: ws.GroceryListClearData{ListID: list.ID},
	})
	return nil
}

// refreshAndPublish, tekil değişiklikten sonra tam listeyi yayınlar.
// Okuma hatası yazmayı geri almaz; sadece event gönderilmez.
func (s *groceryListService) refreshAndPublish(ctx context.Context, userID string) {
	list, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return
	}
	s.publishUpdate(userID, list)
}

func (s *groceryListService) publishUpdate(userID string, list *models.GroceryList) {
	s.hub.BroadcastToUser(userID, ws.Event{
		Op:   ws.OpGroceryListUpdate,
		Data: ws.GroceryListUpdateData{ListID: list.ID, Items: list.Items},
	})
}
