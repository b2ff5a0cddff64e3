package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/grocery-planner/database"
	"github.com/akinalp/grocery-planner/handlers"
	"github.com/akinalp/grocery-planner/middleware"
	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg/ratelimit"
	"github.com/akinalp/grocery-planner/pkg/spoonacular"
	"github.com/akinalp/grocery-planner/repository"
	"github.com/akinalp/grocery-planner/services"
	"github.com/akinalp/grocery-planner/ws"
)

type stubRecipeAPI struct{}

func (stubRecipeAPI) SearchRecipes(_ context.Context, opts models.RecipeSearchOptions) (*models.RecipeSearchResponse, error) {
	if opts.Query == "quota" {
		return nil, &spoonacular.APIError{Status: http.StatusPaymentRequired, Message: "daily points limit reached"}
	}
	return &models.RecipeSearchResponse{
		Results:      []models.RecipeSearchResult{{ID: 7, Title: "Pasta " + opts.Query}},
		Number:       opts.Number,
		TotalResults: 1,
	}, nil
}

func (stubRecipeAPI) GetRecipe(_ context.Context, id int) (*models.RecipeDetails, error) {
	return &models.RecipeDetails{RecipeSearchResult: models.RecipeSearchResult{ID: id, Title: "Pasta"}}, nil
}

type testServer struct {
	mux          *http.ServeMux
	loginLimiter *ratelimit.Limiter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)
	db, err := database.New(filepath.Join(t.TempDir(), "api.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	verificationRepo := repository.NewSQLiteVerificationRepo(db.Conn)
	profileRepo := repository.NewSQLiteProfileRepo(db.Conn)
	groceryRepo := repository.NewSQLiteGroceryListRepo(db.Conn)

	hub := ws.NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	authService := services.NewAuthService(userRepo, sessionRepo, verificationRepo, nil, "test-secret", 15, 7)
	recipeService := services.NewRecipeService(stubRecipeAPI{}, time.Minute)
	t.Cleanup(recipeService.Close)

	loginLimiter := ratelimit.New(2, time.Minute)
	t.Cleanup(loginLimiter.Stop)

	authH := handlers.NewAuthHandler(authService, loginLimiter, nil)
	profileH := handlers.NewProfileHandler(services.NewProfileService(userRepo, profileRepo, sessionRepo))
	recipeH := handlers.NewRecipeHandler(recipeService)
	groceryH := handlers.NewGroceryListHandler(services.NewGroceryListService(groceryRepo, hub))
	savedH := handlers.NewSavedListHandler(services.NewSavedListService(groceryRepo, hub))

	authMw := middleware.NewAuthMiddleware(authService)
	auth := func(h http.HandlerFunc) http.Handler { return authMw.Require(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handlers.Health)
	mux.HandleFunc("POST /api/auth/register", authH.Register)
	mux.HandleFunc("POST /api/auth/login", authH.Login)
	mux.HandleFunc("POST /api/auth/refresh", authH.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authH.Logout)
	mux.HandleFunc("POST /api/auth/recover", authH.Recover)
	mux.Handle("GET /api/auth/profile", auth(profileH.Get))
	mux.Handle("PUT /api/auth/profile", auth(profileH.Update))
	mux.Handle("DELETE /api/auth/profile", auth(profileH.Delete))
	mux.Handle("GET /api/users/{id}", auth(profileH.GetUser))
	mux.HandleFunc("GET /api/recipes/search", recipeH.Search)
	mux.HandleFunc("GET /api/recipes/{id}", recipeH.Get)
	mux.Handle("GET /api/grocery-list", auth(groceryH.GetActive))
	mux.Handle("PUT /api/grocery-list/items", auth(groceryH.SaveItems))
	mux.Handle("DELETE /api/grocery-list/items", auth(groceryH.Clear))
	mux.Handle("PATCH /api/grocery-list/items/{id}", auth(groceryH.UpdateItem))
	mux.Handle("DELETE /api/grocery-list/items/{id}", auth(groceryH.DeleteItem))
	mux.Handle("GET /api/grocery-lists", auth(savedH.List))
	mux.Handle("POST /api/grocery-lists", auth(savedH.Save))
	mux.Handle("GET /api/grocery-lists/{id}", auth(savedH.Get))
	mux.Handle("DELETE /api/grocery-lists/{id}", auth(savedH.Delete))

	return &testServer{mux: mux, loginLimiter: loginLimiter}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, email string) models.AuthSession {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.AuthSession](t, rec).Data
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) models.Envelope[T] {
	t.Helper()
	var env models.Envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "grocery-planner-api", body["service"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	session := s.register(t, "Cook@Example.com")
	assert.Equal(t, "cook@example.com", session.User.Email)
	assert.NotEmpty(t, session.AccessToken)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"email": "cook@example.com", "password": "password123",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		s.mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", decode[any](t, rec).Error)
	})

	t.Run("refresh rotates token", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": session.RefreshToken})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEqual(t, session.RefreshToken, decode[models.AuthSession](t, rec).Data.RefreshToken)

		rec = s.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": session.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("recover is enumeration safe", func(t *testing.T) {
		known := s.do(t, http.MethodPost, "/api/auth/recover", "", map[string]string{"email": "cook@example.com"})
		unknown := s.do(t, http.MethodPost, "/api/auth/recover", "", map[string]string{"email": "nobody@example.com"})
		assert.Equal(t, http.StatusOK, known.Code)
		assert.Equal(t, known.Body.String(), unknown.Body.String())
	})
}

func TestLoginRateLimit(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "limit@example.com")

	bad := map[string]string{"email": "limit@example.com", "password": "wrong-password"}
	for range 2 {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "", bad)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", bad)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, decode[any](t, rec).Error, "too many login attempts")
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "authorization header required"},
		{"wrong scheme", "Basic abc", "invalid authorization format, use: Bearer <token>"},
		{"garbage token", "Bearer not-a-jwt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/grocery-list", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.mux.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			if tt.want != "" {
				assert.Equal(t, tt.want, decode[any](t, rec).Error)
			}
		})
	}
}

func TestProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice@example.com")
	bob := s.register(t, "bob@example.com")

	rec := s.do(t, http.MethodPut, "/api/auth/profile", alice.AccessToken, map[string]any{
		"display_name": "Alice",
		"preferences":  map[string]any{"diet": "vegetarian"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/auth/profile", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[models.ProfileResponse](t, rec).Data
	require.NotNil(t, profile.Profile)
	require.NotNil(t, profile.Profile.DisplayName)
	assert.Equal(t, "Alice", *profile.Profile.DisplayName)

	rec = s.do(t, http.MethodGet, "/api/users/"+bob.User.ID, alice.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/users/"+alice.User.ID, alice.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/auth/profile", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Silinen hesabın access token'ı artık kullanıcıya çözülemez.
	rec = s.do(t, http.MethodGet, "/api/auth/profile", bob.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecipeEndpoints(t *testing.T) {
	s := newTestServer(t)

	t.Run("query required", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/recipes/search", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("search", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/recipes/search?query=carbonara&number=5", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[models.RecipeSearchResponse](t, rec).Data
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "Pasta carbonara", resp.Results[0].Title)
		assert.Equal(t, 5, resp.Number)
	})

	t.Run("upstream status is forwarded", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/recipes/search?query=quota", "", nil)
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Equal(t, "daily points limit reached", decode[any](t, rec).Error)
	})

	t.Run("details", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/recipes/42", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 42, decode[models.RecipeDetails](t, rec).Data.ID)
	})

	t.Run("non numeric id", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/recipes/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGroceryListEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "shopper@example.com").AccessToken

	rec := s.do(t, http.MethodGet, "/api/grocery-list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[models.GroceryList](t, rec).Data
	assert.True(t, list.IsActive)
	assert.Empty(t, list.Items)

	t.Run("items array required", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/grocery-list/items", token, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Items array is required", decode[any](t, rec).Error)
	})

	items := []models.GroceryItem{
		{ID: "a", Name: "flour", Amount: "2", Unit: "cups", Aisle: "Baking"},
		{ID: "b", Name: "eggs", Amount: "3"},
	}
	rec = s.do(t, http.MethodPut, "/api/grocery-list/items", token, map[string]any{"items": items})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[models.GroceryList](t, rec).Data
	require.Len(t, saved.Items, 2)
	assert.Equal(t, "a", saved.Items[0].ID)
	assert.Equal(t, models.DefaultAisle, saved.Items[1].Aisle)

	rec = s.do(t, http.MethodPatch, "/api/grocery-list/items/b", token, map[string]any{"checked": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[models.GroceryItem](t, rec).Data.Checked)

	rec = s.do(t, http.MethodPatch, "/api/grocery-list/items/missing", token, map[string]any{"checked": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/grocery-list/items/a", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/grocery-list", token, nil)
	list = decode[models.GroceryList](t, rec).Data
	require.Len(t, list.Items, 1)
	assert.Equal(t, "b", list.Items[0].ID)

	rec = s.do(t, http.MethodDelete, "/api/grocery-list/items", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/grocery-list", token, nil)
	assert.Empty(t, decode[models.GroceryList](t, rec).Data.Items)
}

func TestSavedListEndpoints(t *testing.T) {
	s := newTestServer(t)
	owner := s.register(t, "owner@example.com").AccessToken
	other := s.register(t, "other@example.com").AccessToken

	rec := s.do(t, http.MethodPost, "/api/grocery-lists", owner, map[string]any{"name": "Weekend"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/grocery-lists", owner, map[string]any{
		"name":  "Weekend",
		"items": []models.GroceryItem{{ID: "x", Name: "milk"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decode[models.GroceryList](t, rec)
	assert.Equal(t, "Grocery list saved successfully", env.Message)
	listID := env.Data.ID
	assert.False(t, env.Data.IsActive)

	rec = s.do(t, http.MethodGet, "/api/grocery-lists", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.GroceryList](t, rec).Data, 1)

	rec = s.do(t, http.MethodGet, "/api/grocery-lists/"+listID, other, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Grocery list not found", decode[any](t, rec).Error)

	rec = s.do(t, http.MethodGet, "/api/grocery-lists/"+listID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Weekend", decode[models.GroceryList](t, rec).Data.Name)

	rec = s.do(t, http.MethodDelete, "/api/grocery-lists/"+listID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/grocery-lists/"+listID, owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
