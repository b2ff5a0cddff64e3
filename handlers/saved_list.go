package handlers

import (
	"errors"
	"net/http"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/services"
)

// SavedListHandler, isimli liste snapshot'ları: /api/grocery-lists.
type SavedListHandler struct {
	savedService services.SavedListService
}

// NewSavedListHandler, constructor.
func NewSavedListHandler(savedService services.SavedListService) *SavedListHandler {
	return &SavedListHandler{savedService: savedService}
}

// List godoc
// GET /api/grocery-lists
func (h *SavedListHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	lists, err := h.savedService.List(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, lists)
}

// Save godoc
// POST /api/grocery-lists
// Body: { "items": [...], "name"?: "...", "savedAt"?: "..." }
func (h *SavedListHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.SaveGroceryListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Items == nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Items array is required")
		return
	}

	list, err := h.savedService.Save(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSONWithMessage(w, http.StatusCreated, list, "Grocery list saved successfully")
}

// Get godoc
// GET /api/grocery-lists/{id}
func (h *SavedListHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	list, err := h.savedService.Get(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeListError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, list)
}

// Delete godoc
// DELETE /api/grocery-lists/{id}
func (h *SavedListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.savedService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		writeListError(w, err)
		return
	}

	pkg.JSONWithMessage(w, http.StatusOK, nil, "Grocery list deleted successfully")
}

func writeListError(w http.ResponseWriter, err error) {
	if errors.Is(err, pkg.ErrNotFound) {
		pkg.ErrorWithMessage(w, http.StatusNotFound, "Grocery list not found")
		return
	}
	pkg.Error(w, err)
}
