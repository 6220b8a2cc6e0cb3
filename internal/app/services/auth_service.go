package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/app/repositories"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	usuarioRepo *repositories.UsuarioRepository
	tokenRepo   *repositories.TokenRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	usuarioRepo *repositories.UsuarioRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		usuarioRepo: usuarioRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates a usuario by email and senha and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	usuario, err := s.usuarioRepo.GetUsuarioByEmail(ctx, req.Email)
	if err != nil {
		// Same answer for unknown email and wrong senha
		s.logger.Debug().Str("email", req.Email).Msg("Login attempt for unknown email")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(usuario.Senha, req.Senha) {
		s.logger.Debug().Int64("usuarioId", usuario.ID).Msg("Login attempt with wrong senha")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !usuario.Ativo {
		return nil, apperrors.ErrContaDesativada
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(usuario)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, usuario.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	if err := s.usuarioRepo.RegisterLogin(ctx, usuario.ID); err != nil {
		// Login still succeeds; the timestamp is informational
		s.logger.Warn().Err(err).Int64("usuarioId", usuario.ID).Msg("Failed to register login timestamp")
	}

	s.logger.Info().Int64("usuarioId", usuario.ID).Str("papel", string(usuario.Papel)).Msg("Usuario logged in")

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}

// RefreshToken rotates a refresh token: the old one is revoked and a fresh
// pair is issued
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	usuarioID, expiryDate, isRevoked, err := s.tokenRepo.GetTokenByValue(ctx, req.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrTokenNotFound
	}
	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(expiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	usuario, err := s.usuarioRepo.GetUsuarioByID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if !usuario.Ativo {
		return nil, apperrors.ErrContaDesativada
	}

	if err := s.tokenRepo.RevokeToken(ctx, req.RefreshToken); err != nil {
		return nil, fmt.Errorf("error revoking refresh token: %w", err)
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(usuario)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, usuario.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}

// Logout revokes the given refresh token
func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if err := s.tokenRepo.RevokeToken(ctx, req.RefreshToken); err != nil {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// ChangeSenha replaces the usuario's senha after checking the current one.
// Every open refresh token is revoked so stolen sessions die with the old senha.
func (s *AuthService) ChangeSenha(ctx context.Context, usuarioID int64, req *dto.ChangeSenhaRequest) error {
	usuario, err := s.usuarioRepo.GetUsuarioByID(ctx, usuarioID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(usuario.Senha, req.SenhaAtual) {
		return apperrors.ErrInvalidCredentials
	}

	senhaHash, err := auth.HashPassword(req.NovaSenha)
	if err != nil {
		return fmt.Errorf("error hashing senha: %w", err)
	}

	if err := s.usuarioRepo.UpdateSenha(ctx, usuarioID, senhaHash); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllForUsuario(ctx, usuarioID); err != nil {
		s.logger.Warn().Err(err).Int64("usuarioId", usuarioID).Msg("Failed to revoke refresh tokens after senha change")
	}
	return nil
}

// GetPerfil returns the authenticated usuario's own profile
func (s *AuthService) GetPerfil(ctx context.Context, usuarioID int64) (*dto.PerfilResponse, error) {
	usuario, err := s.usuarioRepo.GetUsuarioByID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	return &dto.PerfilResponse{
		ID:          usuario.ID,
		Nome:        usuario.Nome,
		Email:       usuario.Email,
		Papel:       string(usuario.Papel),
		Ativo:       usuario.Ativo,
		UltimoLogin: usuario.UltimoLogin,
	}, nil
}
