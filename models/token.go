package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ın payload'ı.
// Server her request'te token'ı doğrular — DB'ye gitmeden kullanıcının kim olduğunu bilir.
//
// models paketinde tanımlı çünkü services, middleware ve ws aynı tipi kullanır
// (circular dependency önlenir).
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
