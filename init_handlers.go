// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Handler'lar ince: sadece HTTP parse + service call + response write.
package main

import (
	"github.com/akinalp/grocery-planner/config"
	"github.com/akinalp/grocery-planner/handlers"
	"github.com/akinalp/grocery-planner/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Profile     *handlers.ProfileHandler
	Recipe      *handlers.RecipeHandler
	GroceryList *handlers.GroceryListHandler
	SavedList   *handlers.SavedListHandler
	WS          *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, hub *ws.Hub, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:        handlers.NewAuthHandler(svcs.Auth, limiters.Login, limiters.Recover),
		Profile:     handlers.NewProfileHandler(svcs.Profile),
		Recipe:      handlers.NewRecipeHandler(svcs.Recipe),
		GroceryList: handlers.NewGroceryListHandler(svcs.GroceryList),
		SavedList:   handlers.NewSavedListHandler(svcs.SavedList),
		WS:          ws.NewHandler(hub, svcs.Auth, cfg.CORS.Origins),
	}
}
