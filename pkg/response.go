package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
)

// APIResponse, tüm API yanıtları için standart format.
// Frontend ve apiclient her zaman aynı yapıyı bekler:
//
//	{ "success": true, "data": {...}, "message": "..." }
//	{ "success": false, "error": "...", "message": "..." }
//
// Transport hatası olmasa bile çağıran taraf Success alanını kontrol etmelidir.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON, başarılı bir yanıt gönderir.
func JSON(w http.ResponseWriter, status int, data any) {
	JSONWithMessage(w, status, data, "")
}

// JSONWithMessage, başarılı yanıta kullanıcıya gösterilecek bir mesaj ekler
// (ör: "Grocery list saved successfully").
func JSONWithMessage(w http.ResponseWriter, status int, data any, message string) {
	writeResponse(w, status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Error, hata yanıtı gönderir.
// Domain error'ları otomatik olarak uygun HTTP status code'a çevrilir.
func Error(w http.ResponseWriter, err error) {
	ErrorWithMessage(w, mapErrorToStatus(err), err.Error())
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
// message hem "error" hem "message" alanına yazılır — eski client'lar "message" okur.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	writeResponse(w, status, APIResponse{
		Success: false,
		Error:   message,
		Message: message,
	})
}

func writeResponse(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
// errors.Is() wrap edilmiş error'ları da doğru eşler.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrRemoteUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
