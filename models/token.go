package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ın payload'ı.
//
// Name, typing broadcast gibi yerlerde DB sorgusuz isim göstermek için
// token'a gömülür.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, ws, middleware) tarafından kullanılır — her katman models'e
// bağımlı olabilir, circular dependency oluşmaz.
type TokenClaims struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}
