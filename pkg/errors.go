// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir. errors.New() ile sabit error değişkenleri
// tanımlarız, karşılaştırma string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Aynı sentinel'lar hem server (handler → HTTP status) hem client
// (apiclient → HTTP status → sentinel) tarafında kullanılır.
package pkg

import "errors"

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
	ErrRateLimited   = errors.New("rate limited")

	// ErrAuthRequired, oturum gerektiren bir işlemde aktif kullanıcı yoksa döner.
	// ErrUnauthorized'dan farkı: kimlik bilgisi yanlış değil, hiç yok.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRemoteUnavailable, upstream servise (Spoonacular, API server) ulaşılamadığında döner.
	// Client tarafında fallback yolu olan işlemler bu error'u yutar.
	ErrRemoteUnavailable = errors.New("remote unavailable")
)
