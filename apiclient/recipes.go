package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/akinalp/grocery-planner/models"
)

// SearchRecipes, server'ın tarif arama proxy'sini çağırır.
func (c *Client) SearchRecipes(ctx context.Context, opts models.RecipeSearchOptions) (*models.RecipeSearchResponse, error) {
	env, err := call[models.RecipeSearchResponse](ctx, c, http.MethodGet,
		"/api/recipes/search?"+opts.Values().Encode(), nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetRecipe, tarif detayını getirir.
func (c *Client) GetRecipe(ctx context.Context, id int) (*models.RecipeDetails, error) {
	env, err := call[models.RecipeDetails](ctx, c, http.MethodGet, "/api/recipes/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}
