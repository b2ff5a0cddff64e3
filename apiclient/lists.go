package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/akinalp/grocery-planner/models"
)

// GetActiveList, oturumdaki kullanıcının aktif listesi.
func (c *Client) GetActiveList(ctx context.Context) (*models.GroceryList, error) {
	env, err := call[models.GroceryList](ctx, c, http.MethodGet, "/api/grocery-list", nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, unsuccessful("get active list", env.Error, env.Message)
	}
	return &env.Data, nil
}

// SaveItems, aktif listenin tamamını değiştirir.
func (c *Client) SaveItems(ctx context.Context, items []models.GroceryItem) error {
	if items == nil {
		items = []models.GroceryItem{}
	}
	_, err := call[models.GroceryList](ctx, c, http.MethodPut, "/api/grocery-list/items",
		models.SaveItemsRequest{Items: items})
	return err
}

// ClearList, aktif listeyi boşaltır.
func (c *Client) ClearList(ctx context.Context) error {
	_, err := call[struct{}](ctx, c, http.MethodDelete, "/api/grocery-list/items", nil)
	return err
}

// Save, isimli bir snapshot kaydeder.
// Sunucu isteği reddederse (4xx) zarf success=false ile döner, hata değil.
func (c *Client) Save(ctx context.Context, req models.SaveGroceryListRequest) (models.Envelope[models.GroceryList], error) {
	if req.Items == nil {
		req.Items = []models.GroceryItem{}
	}
	env, err := call[models.GroceryList](ctx, c, http.MethodPost, "/api/grocery-lists", req)
	if softFailure(err) {
		return env, nil
	}
	return env, err
}

// Get, isimli bir snapshot'ı getirir.
func (c *Client) Get(ctx context.Context, id string) (models.Envelope[models.GroceryList], error) {
	env, err := call[models.GroceryList](ctx, c, http.MethodGet, "/api/grocery-lists/"+url.PathEscape(id), nil)
	if softFailure(err) {
		return env, nil
	}
	return env, err
}

// Delete, isimli bir snapshot'ı siler.
func (c *Client) Delete(ctx context.Context, id string) (models.Envelope[struct{}], error) {
	env, err := call[struct{}](ctx, c, http.MethodDelete, "/api/grocery-lists/"+url.PathEscape(id), nil)
	if softFailure(err) {
		return env, nil
	}
	return env, err
}

// List, kullanıcının kayıtlı snapshot'ları (en yeni önce).
func (c *Client) List(ctx context.Context) (models.Envelope[[]models.GroceryList], error) {
	env, err := call[[]models.GroceryList](ctx, c, http.MethodGet, "/api/grocery-lists", nil)
	if softFailure(err) {
		return env, nil
	}
	return env, err
}
