package handlers

import (
	"log"
	"net/http"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/pkg/spoonacular"
	"github.com/akinalp/grocery-planner/services"
)

// RecipeHandler, tarif arama proxy endpoint'leri (auth gerektirmez).
type RecipeHandler struct {
	recipeService services.RecipeService
}

// NewRecipeHandler, constructor.
func NewRecipeHandler(recipeService services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// Search godoc
// GET /api/recipes/search?query=...&number=&offset=&cuisine=&diet=&type=&maxReadyTime=
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	opts, err := models.ParseRecipeSearchOptions(r.URL.Query())
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.recipeService.Search(r.Context(), opts)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, resp)
}

// Get godoc
// GET /api/recipes/{id}
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.recipeService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, recipe)
}

// writeUpstreamError, Spoonacular'ın status'unu ve mesajını aynen iletir;
// diğer hatalar normal domain error eşlemesinden geçer.
func writeUpstreamError(w http.ResponseWriter, err error) {
	if apiErr, ok := spoonacular.IsAPIError(err); ok {
		log.Printf("[recipes] upstream error: %v", apiErr)
		pkg.ErrorWithMessage(w, apiErr.Status, apiErr.Message)
		return
	}
	pkg.Error(w, err)
}
