// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Literal path'ler parametrik path'lerden önce tanımlanır.
package main

import (
	"net/http"

	"github.com/akinalp/grocery-planner/handlers"
	"github.com/akinalp/grocery-planner/middleware"
	"github.com/akinalp/grocery-planner/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
func initRoutes(mux *http.ServeMux, h *Handlers, authService services.AuthService) {
	authMw := middleware.NewAuthMiddleware(authService)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Health
	mux.HandleFunc("GET /api/health", handlers.Health)

	// Auth — public
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("POST /api/auth/verify", h.Auth.Verify)
	mux.HandleFunc("POST /api/auth/recover", h.Auth.Recover)

	// Profile & account
	mux.Handle("GET /api/auth/profile", auth(h.Profile.Get))
	mux.Handle("PUT /api/auth/profile", auth(h.Profile.Update))
	mux.Handle("DELETE /api/auth/profile", auth(h.Profile.Delete))
	mux.Handle("GET /api/users/{id}", auth(h.Profile.GetUser))

	// Recipes — public proxy
	mux.HandleFunc("GET /api/recipes/search", h.Recipe.Search)
	mux.HandleFunc("GET /api/recipes/{id}", h.Recipe.Get)

	// Active grocery list
	mux.Handle("GET /api/grocery-list", auth(h.GroceryList.GetActive))
	mux.Handle("PUT /api/grocery-list/items", auth(h.GroceryList.SaveItems))
	mux.Handle("DELETE /api/grocery-list/items", auth(h.GroceryList.Clear))
	mux.Handle("PATCH /api/grocery-list/items/{id}", auth(h.GroceryList.UpdateItem))
	mux.Handle("DELETE /api/grocery-list/items/{id}", auth(h.GroceryList.DeleteItem))

	// Saved lists
	mux.Handle("GET /api/grocery-lists", auth(h.SavedList.List))
	mux.Handle("POST /api/grocery-lists", auth(h.SavedList.Save))
	mux.Handle("GET /api/grocery-lists/{id}", auth(h.SavedList.Get))
	mux.Handle("DELETE /api/grocery-lists/{id}", auth(h.SavedList.Delete))

	// WebSocket — tarayıcılar WS handshake'inde header ekleyemez,
	// token query parameter olarak gelir ve handler kendisi doğrular.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
