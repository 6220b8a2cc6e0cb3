package dto

import "time"

// LoginRequest represents the login payload
type LoginRequest struct {
	Email string `json:"email" binding:"required,email" example:"maria@escola.edu.br"`
	Senha string `json:"senha" binding:"required,min=8" example:"s3nh4-forte"`
}

// RefreshTokenRequest represents the token refresh payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangeSenhaRequest represents a senha change for the session usuario
type ChangeSenhaRequest struct {
	SenhaAtual string `json:"senhaAtual" binding:"required"`
	NovaSenha  string `json:"novaSenha" binding:"required,min=8"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`        // seconds
	RefreshExpiresIn int    `json:"refreshExpiresIn"` // seconds
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// PerfilResponse is the authenticated usuario's own profile
type PerfilResponse struct {
	ID          int64      `json:"id"`
	Nome        string     `json:"nome"`
	Email       string     `json:"email"`
	Papel       string     `json:"papel"`
	Ativo       bool       `json:"ativo"`
	UltimoLogin *time.Time `json:"ultimoLogin,omitempty"`
}
