package models

import "github.com/golang-jwt/jwt/v5"

// Claims are the display fields carried in the token payload. They are never
// verified on the client and must not be used for authorization.
type Claims struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Picture   string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}
