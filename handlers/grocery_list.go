package handlers

import (
	"net/http"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/services"
)

// GroceryListHandler, kullanıcının aktif listesi.
type GroceryListHandler struct {
	groceryService services.GroceryListService
}

// NewGroceryListHandler, constructor.
func NewGroceryListHandler(groceryService services.GroceryListService) *GroceryListHandler {
	return &GroceryListHandler{groceryService: groceryService}
}

// GetActive godoc
// GET /api/grocery-list
// İlk çağrıda boş bir aktif liste oluşturulur.
func (h *GroceryListHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	list, err := h.groceryService.GetActive(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, list)
}

// SaveItems godoc
// PUT /api/grocery-list/items
// Body: { "items": [...] } — listenin tamamı, sıra korunur.
func (h *GroceryListHandler) SaveItems(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.SaveItemsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Items == nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Items array is required")
		return
	}

	list, err := h.groceryService.SaveItems(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, list)
}

// Clear godoc
// DELETE /api/grocery-list/items
func (h *GroceryListHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.groceryService.Clear(r.Context(), user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSONWithMessage(w, http.StatusOK, nil, "grocery list cleared")
}

// UpdateItem godoc
// PATCH /api/grocery-list/items/{id}
// Body: { "checked"?: true, "name"?: "...", ... }
func (h *GroceryListHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdateGroceryItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.groceryService.UpdateItem(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, item)
}

// DeleteItem godoc
// DELETE /api/grocery-list/items/{id}
func (h *GroceryListHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.groceryService.DeleteItem(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSONWithMessage(w, http.StatusOK, nil, "item deleted")
}
