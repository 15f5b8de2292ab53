package dto

import "github.com/adisharma/clubhub/internal/app/models"

// RegisterRequest is the email/password sign-up payload
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

// LoginRequest is the email/password sign-in payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProviderLoginRequest carries an identity assertion verified by an
// external provider
type ProviderLoginRequest struct {
	Provider    string `json:"provider" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is returned from every sign-in path
type TokenResponse struct {
	User   *models.SessionUser `json:"user"`
	Tokens *models.TokenPair   `json:"tokens"`
}
