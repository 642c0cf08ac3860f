package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims identifying a registered user
type UserClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for account registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"max=128"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// TokenResponse is returned after register or login
type TokenResponse struct {
	Token string `json:"token"`
}
