package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolaplus/backend/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "escolaplus.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)
	usuario := &models.Usuario{
		ID:    42,
		Email: "gestor@escola.edu.br",
		Papel: models.PapelGestor,
	}

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(usuario)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "gestor@escola.edu.br", claims.Email)
	assert.Equal(t, "GESTOR", claims.Papel)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService(-time.Minute)
	usuario := &models.Usuario{ID: 1, Email: "a@b.c", Papel: models.PapelAdmin}

	access, _, _, _, err := svc.GenerateTokenPair(usuario)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(JWTConfig{SecretKey: "another", AccessTokenExp: time.Hour})
	usuario := &models.Usuario{ID: 1, Email: "a@b.c", Papel: models.PapelAdmin}

	access, _, _, _, err := svc.GenerateTokenPair(usuario)
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3nh4-forte")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3nh4-forte"))
	assert.False(t, CheckPassword(hash, "errada"))
}
