package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
)

// fakeOcorrenciaStore is an in-memory ocorrenciaStore for service tests.
type fakeOcorrenciaStore struct {
	ocorrencias map[int64]*models.Ocorrencia
	nextID      int64

	lastListTipo *models.TipoOcorrencia
	deleted      []int64
}

func newFakeOcorrenciaStore() *fakeOcorrenciaStore {
	return &fakeOcorrenciaStore{ocorrencias: map[int64]*models.Ocorrencia{}, nextID: 1}
}

func (f *fakeOcorrenciaStore) Create(_ context.Context, o *models.Ocorrencia) error {
	o.ID = f.nextID
	f.nextID++
	o.CreatedAt = time.Now()
	f.ocorrencias[o.ID] = o
	return nil
}

func (f *fakeOcorrenciaStore) GetByID(_ context.Context, id int64) (*models.Ocorrencia, error) {
	o, ok := f.ocorrencias[id]
	if !ok {
		return nil, apperrors.ErrOcorrenciaNotFound
	}
	return o, nil
}

func (f *fakeOcorrenciaStore) ListByAluno(_ context.Context, alunoID int64, tipo *models.TipoOcorrencia) ([]*models.Ocorrencia, error) {
	f.lastListTipo = tipo
	var out []*models.Ocorrencia
	for _, o := range f.ocorrencias {
		if o.AlunoID != alunoID {
			continue
		}
		if tipo != nil && o.Tipo != *tipo {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOcorrenciaStore) ListVisiveisByAluno(_ context.Context, alunoID int64) ([]*models.Ocorrencia, error) {
	var out []*models.Ocorrencia
	for _, o := range f.ocorrencias {
		if o.AlunoID == alunoID && o.VisivelParaResponsavel {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOcorrenciaStore) UpdatePartial(_ context.Context, id int64, req *dto.UpdateOcorrenciaRequest, dataOcorrencia *time.Time) error {
	o, ok := f.ocorrencias[id]
	if !ok {
		return apperrors.ErrOcorrenciaNotFound
	}
	if req.Tipo != nil {
		o.Tipo = models.TipoOcorrencia(*req.Tipo)
	}
	if req.Titulo != nil {
		o.Titulo = *req.Titulo
	}
	if req.Descricao != nil {
		o.Descricao = *req.Descricao
	}
	if req.VisivelParaResponsavel != nil {
		o.VisivelParaResponsavel = *req.VisivelParaResponsavel
	}
	if dataOcorrencia != nil {
		o.DataOcorrencia = *dataOcorrencia
	}
	return nil
}

func (f *fakeOcorrenciaStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.ocorrencias[id]; !ok {
		return apperrors.ErrOcorrenciaNotFound
	}
	delete(f.ocorrencias, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestOcorrenciaService(store *fakeOcorrenciaStore) OcorrenciaService {
	return NewOcorrenciaService(store, zerolog.Nop())
}

func TestOcorrenciaCreateDefaults(t *testing.T) {
	store := newFakeOcorrenciaStore()
	svc := newTestOcorrenciaService(store)

	o, err := svc.Create(context.Background(), 10, 42, &dto.CreateOcorrenciaRequest{
		Titulo:    "Sem uniforme",
		Descricao: "Aluno chegou sem o uniforme da escola",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OcorrenciaOutro, o.Tipo, "tipo falls back to OUTRO")
	assert.Equal(t, time.Now().Format("2006-01-02"), o.DataOcorrencia.Format("2006-01-02"), "data falls back to today")
	assert.Equal(t, int64(42), o.AutorID)
	assert.Equal(t, int64(10), o.AlunoID)
	assert.False(t, o.VisivelParaResponsavel)
}

func TestOcorrenciaCreateRejectsBadDate(t *testing.T) {
	svc := newTestOcorrenciaService(newFakeOcorrenciaStore())

	_, err := svc.Create(context.Background(), 10, 42, &dto.CreateOcorrenciaRequest{
		Titulo:         "Atraso",
		Descricao:      "Chegou atrasado",
		DataOcorrencia: "15/03/2026",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestOcorrenciaListByAlunoTipoFilter(t *testing.T) {
	store := newFakeOcorrenciaStore()
	svc := newTestOcorrenciaService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, 10, 1, &dto.CreateOcorrenciaRequest{Tipo: "ELOGIO", Titulo: "Ótima prova", Descricao: "Nota máxima"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 10, 1, &dto.CreateOcorrenciaRequest{Tipo: "ADVERTENCIA", Titulo: "Briga", Descricao: "Discussão no pátio"})
	require.NoError(t, err)

	list, err := svc.ListByAluno(ctx, 10, "ELOGIO")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.OcorrenciaElogio, list[0].Tipo)
	require.NotNil(t, store.lastListTipo)
	assert.Equal(t, models.OcorrenciaElogio, *store.lastListTipo)

	// An empty tipo means no filter
	list, err = svc.ListByAluno(ctx, 10, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Nil(t, store.lastListTipo)

	_, err = svc.ListByAluno(ctx, 10, "SUSPENSAO")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestOcorrenciaListVisiveis(t *testing.T) {
	store := newFakeOcorrenciaStore()
	svc := newTestOcorrenciaService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, 10, 1, &dto.CreateOcorrenciaRequest{Titulo: "Interna", Descricao: "Somente equipe"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 10, 1, &dto.CreateOcorrenciaRequest{Titulo: "Aviso", Descricao: "Reunião de pais", VisivelParaResponsavel: true})
	require.NoError(t, err)

	list, err := svc.ListVisiveisByAluno(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Aviso", list[0].Titulo)
}

func TestOcorrenciaUpdateAuthorship(t *testing.T) {
	ctx := context.Background()
	novoTitulo := "Título corrigido"

	tests := []struct {
		name      string
		usuarioID int64
		papel     models.Papel
		wantErr   bool
	}{
		{"autor can edit", 42, models.PapelProfessor, false},
		{"other professor cannot edit", 7, models.PapelProfessor, true},
		{"gestor can edit anyone's", 7, models.PapelGestor, false},
		{"admin can edit anyone's", 7, models.PapelAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeOcorrenciaStore()
			svc := newTestOcorrenciaService(store)

			created, err := svc.Create(ctx, 10, 42, &dto.CreateOcorrenciaRequest{Titulo: "Original", Descricao: "Texto"})
			require.NoError(t, err)

			updated, err := svc.UpdatePartial(ctx, created.ID, tt.usuarioID, tt.papel, &dto.UpdateOcorrenciaRequest{Titulo: &novoTitulo})
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, novoTitulo, updated.Titulo)
			// Untouched fields keep their values
			assert.Equal(t, "Texto", updated.Descricao)
		})
	}
}

func TestOcorrenciaDeleteAuthorship(t *testing.T) {
	ctx := context.Background()
	store := newFakeOcorrenciaStore()
	svc := newTestOcorrenciaService(store)

	created, err := svc.Create(ctx, 10, 42, &dto.CreateOcorrenciaRequest{Titulo: "Registro", Descricao: "Texto"})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID, 7, models.PapelProfessor)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, store.deleted)

	err = svc.Delete(ctx, created.ID, 42, models.PapelProfessor)
	require.NoError(t, err)
	assert.Equal(t, []int64{created.ID}, store.deleted)

	err = svc.Delete(ctx, created.ID, 42, models.PapelProfessor)
	assert.True(t, errors.Is(err, apperrors.ErrOcorrenciaNotFound))
}
