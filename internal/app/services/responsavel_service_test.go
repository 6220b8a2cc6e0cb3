package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
)

// fakeResponsavelStore is an in-memory responsavelStore for service tests.
type fakeResponsavelStore struct {
	responsaveis map[int64]*models.Responsavel
	nextID       int64

	updated []int64
	deleted []int64
}

func newFakeResponsavelStore() *fakeResponsavelStore {
	return &fakeResponsavelStore{responsaveis: map[int64]*models.Responsavel{}, nextID: 1}
}

func (f *fakeResponsavelStore) Create(_ context.Context, r *models.Responsavel) error {
	r.ID = f.nextID
	f.nextID++
	f.responsaveis[r.ID] = r
	return nil
}

func (f *fakeResponsavelStore) GetByID(_ context.Context, id int64) (*models.Responsavel, error) {
	r, ok := f.responsaveis[id]
	if !ok {
		return nil, apperrors.ErrResponsavelNotFound
	}
	return r, nil
}

func (f *fakeResponsavelStore) GetByAlunoID(_ context.Context, alunoID int64) ([]*models.Responsavel, error) {
	var out []*models.Responsavel
	for _, r := range f.responsaveis {
		if r.AlunoID == alunoID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponsavelStore) UpdatePartial(_ context.Context, id int64, req *dto.UpdateResponsavelRequest) error {
	r, ok := f.responsaveis[id]
	if !ok {
		return apperrors.ErrResponsavelNotFound
	}
	if req.Nome != nil {
		r.Nome = *req.Nome
	}
	if req.Telefone != nil {
		r.Telefone = *req.Telefone
	}
	f.updated = append(f.updated, id)
	return nil
}

func (f *fakeResponsavelStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.responsaveis[id]; !ok {
		return apperrors.ErrResponsavelNotFound
	}
	delete(f.responsaveis, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeAlunoResolver knows a fixed set of aluno ids.
type fakeAlunoResolver struct {
	alunos map[int64]bool
}

func (f *fakeAlunoResolver) GetByID(_ context.Context, id int64) (*models.Aluno, error) {
	if !f.alunos[id] {
		return nil, apperrors.ErrAlunoNotFound
	}
	return &models.Aluno{ID: id}, nil
}

func newResponsavelServiceForTest(store *fakeResponsavelStore, alunoIDs ...int64) ResponsavelService {
	alunos := map[int64]bool{}
	for _, id := range alunoIDs {
		alunos[id] = true
	}
	return NewResponsavelService(store, &fakeAlunoResolver{alunos: alunos}, zerolog.Nop())
}

func TestResponsavelCreate(t *testing.T) {
	store := newFakeResponsavelStore()
	svc := newResponsavelServiceForTest(store, 7)

	resp, err := svc.Create(context.Background(), 7, &dto.CreateResponsavelRequest{
		Nome:       "Maria Souza",
		CPF:        "529.982.247-25",
		Telefone:   "(11) 98888-7777",
		Parentesco: "MAE",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.AlunoID)
	assert.Equal(t, "52998224725", resp.CPF)
	assert.Equal(t, "11988887777", resp.Telefone)
}

func TestResponsavelCreateAlunoNotFound(t *testing.T) {
	svc := newResponsavelServiceForTest(newFakeResponsavelStore(), 7)

	_, err := svc.Create(context.Background(), 99, &dto.CreateResponsavelRequest{
		Nome: "Maria Souza", CPF: "529.982.247-25", Telefone: "11988887777", Parentesco: "MAE",
	})
	assert.ErrorIs(t, err, apperrors.ErrAlunoNotFound)
}

func TestResponsavelUpdateScopedToAluno(t *testing.T) {
	store := newFakeResponsavelStore()
	svc := newResponsavelServiceForTest(store, 7, 8)

	created, err := svc.Create(context.Background(), 7, &dto.CreateResponsavelRequest{
		Nome: "Maria Souza", CPF: "529.982.247-25", Telefone: "11988887777", Parentesco: "MAE",
	})
	require.NoError(t, err)

	novoNome := "Maria S. Lima"

	// Reaching the responsavel through another aluno's path must not work
	_, err = svc.UpdatePartial(context.Background(), 8, created.ID, &dto.UpdateResponsavelRequest{Nome: &novoNome})
	assert.ErrorIs(t, err, apperrors.ErrResponsavelNotFound)
	assert.Empty(t, store.updated)
	assert.Equal(t, "Maria Souza", store.responsaveis[created.ID].Nome)

	resp, err := svc.UpdatePartial(context.Background(), 7, created.ID, &dto.UpdateResponsavelRequest{Nome: &novoNome})
	require.NoError(t, err)
	assert.Equal(t, "Maria S. Lima", resp.Nome)
}

func TestResponsavelUpdateStripsTelefone(t *testing.T) {
	store := newFakeResponsavelStore()
	svc := newResponsavelServiceForTest(store, 7)

	created, err := svc.Create(context.Background(), 7, &dto.CreateResponsavelRequest{
		Nome: "Maria Souza", CPF: "529.982.247-25", Telefone: "11988887777", Parentesco: "MAE",
	})
	require.NoError(t, err)

	fone := "(21) 97777-6666"
	resp, err := svc.UpdatePartial(context.Background(), 7, created.ID, &dto.UpdateResponsavelRequest{Telefone: &fone})
	require.NoError(t, err)
	assert.Equal(t, "21977776666", resp.Telefone)
}

func TestResponsavelDeleteScopedToAluno(t *testing.T) {
	store := newFakeResponsavelStore()
	svc := newResponsavelServiceForTest(store, 7, 8)

	created, err := svc.Create(context.Background(), 7, &dto.CreateResponsavelRequest{
		Nome: "Maria Souza", CPF: "529.982.247-25", Telefone: "11988887777", Parentesco: "MAE",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 8, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrResponsavelNotFound)
	assert.Empty(t, store.deleted)

	require.NoError(t, svc.Delete(context.Background(), 7, created.ID))
	assert.Equal(t, []int64{created.ID}, store.deleted)

	err = svc.Delete(context.Background(), 7, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrResponsavelNotFound)
}
