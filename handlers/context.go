// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler ince olmalı:
//  1. Request body'yi parse et (JSON → struct)
//  2. Service katmanını çağır
//  3. Sonucu pkg.JSON / pkg.Error ile döndür
//
// İş mantığı service'te, SQL repository'de yaşar.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/grocery-planner/models"
)

// contextKey, context.Value çakışmalarını önlemek için özel tip.
type contextKey string

// UserContextKey, auth middleware'ın doğruladığı *models.User'ı taşır.
const UserContextKey contextKey = "user"

// maxBodyBytes, JSON body üst sınırı. Büyük bir grocery listesi bile bunun çok altında kalır.
const maxBodyBytes = 1 << 20

// userFromContext, auth middleware'ın eklediği kullanıcıyı okur.
func userFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok && user != nil
}

// decodeJSON, body'yi dst'ye parse eder.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
