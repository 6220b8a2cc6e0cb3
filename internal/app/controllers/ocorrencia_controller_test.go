package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/middleware"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
)

// stubOcorrenciaService lets each test inject the outcome it needs.
type stubOcorrenciaService struct {
	createFn func(ctx context.Context, alunoID, autorID int64, req *dto.CreateOcorrenciaRequest) (*models.Ocorrencia, error)
	listFn   func(ctx context.Context, alunoID int64, tipo string) ([]*models.Ocorrencia, error)
	deleteFn func(ctx context.Context, id, usuarioID int64, papel models.Papel) error
}

func (s *stubOcorrenciaService) Create(ctx context.Context, alunoID, autorID int64, req *dto.CreateOcorrenciaRequest) (*models.Ocorrencia, error) {
	return s.createFn(ctx, alunoID, autorID, req)
}

func (s *stubOcorrenciaService) GetByID(context.Context, int64) (*models.Ocorrencia, error) {
	return nil, apperrors.ErrOcorrenciaNotFound
}

func (s *stubOcorrenciaService) ListByAluno(ctx context.Context, alunoID int64, tipo string) ([]*models.Ocorrencia, error) {
	return s.listFn(ctx, alunoID, tipo)
}

func (s *stubOcorrenciaService) ListVisiveisByAluno(context.Context, int64) ([]*models.Ocorrencia, error) {
	return nil, nil
}

func (s *stubOcorrenciaService) UpdatePartial(context.Context, int64, int64, models.Papel, *dto.UpdateOcorrenciaRequest) (*models.Ocorrencia, error) {
	return nil, apperrors.ErrOcorrenciaNotFound
}

func (s *stubOcorrenciaService) Delete(ctx context.Context, id, usuarioID int64, papel models.Papel) error {
	return s.deleteFn(ctx, id, usuarioID, papel)
}

// sessionFor fakes an authenticated session without a real token.
func sessionFor(usuarioID int64, papel models.Papel) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, usuarioID)
		c.Set(middleware.CtxPapel, string(papel))
		c.Next()
	}
}

func newOcorrenciaRouter(svc *stubOcorrenciaService, usuarioID int64, papel models.Papel) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewOcorrenciaController(svc)

	router := gin.New()
	router.Use(sessionFor(usuarioID, papel))
	router.POST("/alunos/:id/ocorrencias", controller.CreateOcorrencia)
	router.GET("/alunos/:id/ocorrencias", controller.ListOcorrencias)
	router.DELETE("/ocorrencias/:id", controller.DeleteOcorrencia)
	return router
}

func TestCreateOcorrenciaUsesSessionAutor(t *testing.T) {
	var gotAlunoID, gotAutorID int64
	svc := &stubOcorrenciaService{
		createFn: func(_ context.Context, alunoID, autorID int64, req *dto.CreateOcorrenciaRequest) (*models.Ocorrencia, error) {
			gotAlunoID, gotAutorID = alunoID, autorID
			return &models.Ocorrencia{ID: 1, AlunoID: alunoID, AutorID: autorID, Titulo: req.Titulo}, nil
		},
	}
	router := newOcorrenciaRouter(svc, 42, models.PapelProfessor)

	body := `{"titulo": "Sem material", "descricao": "Esqueceu o livro de matemática"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alunos/10/ocorrencias", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(10), gotAlunoID)
	assert.Equal(t, int64(42), gotAutorID, "autor comes from the session, never from the body")
}

func TestCreateOcorrenciaValidation(t *testing.T) {
	svc := &stubOcorrenciaService{
		createFn: func(context.Context, int64, int64, *dto.CreateOcorrenciaRequest) (*models.Ocorrencia, error) {
			t.Fatal("service must not be called for an invalid body")
			return nil, nil
		},
	}
	router := newOcorrenciaRouter(svc, 42, models.PapelProfessor)

	// titulo below the minimum length
	body := `{"titulo": "x", "descricao": "abc"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alunos/10/ocorrencias", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOcorrenciaInvalidID(t *testing.T) {
	svc := &stubOcorrenciaService{}
	router := newOcorrenciaRouter(svc, 42, models.PapelProfessor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alunos/abc/ocorrencias", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOcorrenciasPassesTipo(t *testing.T) {
	var gotTipo string
	svc := &stubOcorrenciaService{
		listFn: func(_ context.Context, _ int64, tipo string) ([]*models.Ocorrencia, error) {
			gotTipo = tipo
			return []*models.Ocorrencia{}, nil
		},
	}
	router := newOcorrenciaRouter(svc, 42, models.PapelGestor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/alunos/10/ocorrencias?tipo=ELOGIO", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ELOGIO", gotTipo)
}

func TestDeleteOcorrenciaForbidden(t *testing.T) {
	svc := &stubOcorrenciaService{
		deleteFn: func(context.Context, int64, int64, models.Papel) error {
			return apperrors.NewForbiddenError("only the autor, a gestor or an admin can delete an ocorrencia")
		},
	}
	router := newOcorrenciaRouter(svc, 7, models.PapelProfessor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/ocorrencias/3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "only the autor")
}
