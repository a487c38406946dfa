package models

import "github.com/golang-jwt/jwt/v4"

// AdminClaims are custom claims for administrator triage tokens, extending
// standard jwt.RegisteredClaims.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
