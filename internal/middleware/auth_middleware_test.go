package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "escolaplus-test",
	})
}

func newProtectedRouter(jwtService *auth.JWTService, papeis ...models.Papel) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	handlerCalled := false

	m := NewAuthMiddleware(jwtService)
	router := gin.New()
	group := router.Group("", m.JWTAuth())
	if len(papeis) > 0 {
		group.Use(m.PapelRequired(papeis...))
	}
	group.GET("/protegido", func(c *gin.Context) {
		handlerCalled = true
		id, _ := SessionUserID(c)
		c.JSON(http.StatusOK, gin.H{"usuarioId": id, "papel": SessionPapel(c)})
	})

	return router, &handlerCalled
}

func accessTokenFor(t *testing.T, jwtService *auth.JWTService, papel models.Papel) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.Usuario{
		ID:    42,
		Email: "professor@escolaplus.com.br",
		Papel: papel,
		Ativo: true,
	})
	require.NoError(t, err)
	return accessToken
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router, handlerCalled := newProtectedRouter(newTestJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *handlerCalled)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router, handlerCalled := newProtectedRouter(newTestJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Token abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *handlerCalled)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router, handlerCalled := newProtectedRouter(newTestJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *handlerCalled)
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	router, handlerCalled := newProtectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, jwtService, models.PapelProfessor))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *handlerCalled)
	assert.Contains(t, w.Body.String(), `"usuarioId":42`)
}

func TestPapelRequired(t *testing.T) {
	tests := []struct {
		name       string
		papel      models.Papel
		allowed    []models.Papel
		wantStatus int
	}{
		{"admin allowed", models.PapelAdmin, []models.Papel{models.PapelAdmin, models.PapelGestor}, http.StatusOK},
		{"gestor allowed", models.PapelGestor, []models.Papel{models.PapelAdmin, models.PapelGestor}, http.StatusOK},
		{"secretaria blocked from turma management", models.PapelSecretaria, []models.Papel{models.PapelAdmin, models.PapelGestor}, http.StatusForbidden},
		{"secretaria handles matriculas", models.PapelSecretaria, []models.Papel{models.PapelAdmin, models.PapelGestor, models.PapelSecretaria}, http.StatusOK},
		{"professor blocked from management", models.PapelProfessor, []models.Papel{models.PapelAdmin, models.PapelGestor}, http.StatusForbidden},
		{"aluno blocked from registrations", models.PapelAluno, []models.Papel{models.PapelAdmin, models.PapelGestor, models.PapelProfessor}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := newTestJWTService()
			router, handlerCalled := newProtectedRouter(jwtService, tt.allowed...)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
			req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, jwtService, tt.papel))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			// The gate rejects before the handler ever runs
			assert.Equal(t, tt.wantStatus == http.StatusOK, *handlerCalled)
		})
	}
}
