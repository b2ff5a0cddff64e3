package models

// Envelope, API'nin {success, data, message, error} yanıt zarfının tipli hali.
// Sunucu tarafı pkg.APIResponse ile yazar; client tarafı bununla okur.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
