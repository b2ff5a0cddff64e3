package spoonacular

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
)

func TestClient_SearchRecipes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "pasta", q.Get("query"))
		assert.Equal(t, "5", q.Get("number"))
		assert.Equal(t, "secret-key", q.Get("apiKey"))
		assert.Equal(t, "true", q.Get("addRecipeInformation"))
		assert.Equal(t, "true", q.Get("fillIngredients"))
		assert.Equal(t, "true", q.Get("metaInformation"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"Pasta","extendedIngredients":[{"nameClean":"penne","amount":200,"unit":"g","aisle":"Pasta and Rice"}]}],"offset":0,"number":5,"totalResults":1}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret-key", time.Second)
	require.NoError(t, err)

	resp, err := c.SearchRecipes(context.Background(), models.RecipeSearchOptions{Query: "pasta", Number: 5})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.TotalResults)

	item := resp.Results[0].ExtendedIngredients[0].Normalize("id")
	assert.Equal(t, "penne", item.Name)
	assert.Equal(t, "200", item.Amount)
}

func TestClient_GetRecipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/42/information", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("includeNutrition"))
		_, _ = w.Write([]byte(`{"id":42,"title":"Soup","instructions":"Boil.","vegan":true}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "k", time.Second)
	require.NoError(t, err)

	recipe, err := c.GetRecipe(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Soup", recipe.Title)
	assert.True(t, recipe.Vegan)
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"status":"failure","code":402,"message":"Your daily points limit has been reached."}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "k", time.Second)
	require.NoError(t, err)

	_, err = c.GetRecipe(context.Background(), 1)
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.Status)
	assert.Equal(t, "Your daily points limit has been reached.", apiErr.Message)
}

func TestClient_TransportErrorMasksKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, "supersecretkey", time.Second)
	require.NoError(t, err)

	_, err = c.SearchRecipes(context.Background(), models.RecipeSearchOptions{Query: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrRemoteUnavailable))
	assert.NotContains(t, err.Error(), "supersecretkey")
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("not a url", "k", time.Second)
	assert.Error(t, err)

	_, err = NewClient("https://api.spoonacular.com", "", time.Second)
	assert.Error(t, err)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "apiKey=abcd******", MaskKey("apiKey=abcdefghij", "abcdefghij"))
	assert.Equal(t, "k=****", MaskKey("k=abc", "abc"))
	assert.Equal(t, "unchanged", MaskKey("unchanged", ""))
}
