package models

import (
	"fmt"
	"strings"
	"time"
)

// DefaultAisle, market reyonu bilinmeyen item'lar için.
const DefaultAisle = "Other"

// DefaultListName, kullanıcının aktif listesi ilk oluşturulduğunda aldığı isim.
const DefaultListName = "My Grocery List"

// GroceryItem, alışveriş listesindeki tek bir satır.
// Kimlik ID'dir, diğer tüm alanlar değiştirilebilir.
type GroceryItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	Unit    string `json:"unit"`
	Checked bool   `json:"checked"`
	Aisle   string `json:"aisle,omitempty"`
}

// GroceryList, kullanıcıya ait bir liste.
// IsActive=true → canlı liste (synchronizer'ın push ettiği),
// IsActive=false → isimle kaydedilmiş snapshot.
type GroceryList struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Name      string        `json:"name"`
	IsActive  bool          `json:"is_active"`
	Items     []GroceryItem `json:"items"`
	SavedAt   *time.Time    `json:"savedAt,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// SaveItemsRequest, PUT /api/grocery-list/items body'si — aktif listenin tamamı.
type SaveItemsRequest struct {
	Items []GroceryItem `json:"items"`
}

// Validate, item listesi zorunlu (boş dizi geçerli — "listeyi boşalt" demek).
func (r *SaveItemsRequest) Validate() error {
	if r.Items == nil {
		return fmt.Errorf("items array is required")
	}
	return validateItems(r.Items)
}

// SaveGroceryListRequest, POST /api/grocery-lists body'si — isimli snapshot.
type SaveGroceryListRequest struct {
	Items   []GroceryItem `json:"items"`
	Name    string        `json:"name,omitempty"`
	SavedAt *time.Time    `json:"savedAt,omitempty"`
}

// Validate, items dizisi zorunlu; isim boşsa tarih bazlı bir isim verilir.
func (r *SaveGroceryListRequest) Validate() error {
	if r.Items == nil {
		return fmt.Errorf("items array is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) > 100 {
		return fmt.Errorf("name must be at most 100 characters")
	}
	return validateItems(r.Items)
}

// UpdateGroceryItemRequest, PATCH /api/grocery-list/items/{id} — kısmi güncelleme.
// nil alanlar değiştirilmez.
type UpdateGroceryItemRequest struct {
	Name    *string `json:"name"`
	Amount  *string `json:"amount"`
	Unit    *string `json:"unit"`
	Checked *bool   `json:"checked"`
	Aisle   *string `json:"aisle"`
}

// Apply, değişiklikleri item'a uygular.
func (r *UpdateGroceryItemRequest) Apply(item *GroceryItem) {
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Amount != nil {
		item.Amount = *r.Amount
	}
	if r.Unit != nil {
		item.Unit = *r.Unit
	}
	if r.Checked != nil {
		item.Checked = *r.Checked
	}
	if r.Aisle != nil {
		item.Aisle = *r.Aisle
	}
}

// Validate, en az bir alan dolu olmalı.
func (r *UpdateGroceryItemRequest) Validate() error {
	if r.Name == nil && r.Amount == nil && r.Unit == nil && r.Checked == nil && r.Aisle == nil {
		return fmt.Errorf("at least one field is required")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

// validateItems, id'ler dolu ve liste içinde benzersiz olmalı.
func validateItems(items []GroceryItem) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %d: id is required", i)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("item %d: duplicate id %q", i, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
