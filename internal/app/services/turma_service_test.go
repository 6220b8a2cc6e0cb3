package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
)

func lecionadaTurmas() []*models.Turma {
	return []*models.Turma{
		{ID: 1, Nome: "6º Ano A", Codigo: "6A-2026", EscolaID: 1},
		{ID: 2, Nome: "6º Ano B", Codigo: "6B-2026", EscolaID: 1},
		{ID: 3, Nome: "7º Ano A", Codigo: "7A-2026", EscolaID: 2},
		{ID: 4, Nome: "8º Ano A", Codigo: "8A-2026", EscolaID: 2},
	}
}

func TestPageTurmasBuscaFilter(t *testing.T) {
	turmas, pagination := pageTurmas(lecionadaTurmas(), dto.TurmaFilter{Busca: "6º ano"}, 1, 10)

	require.Len(t, turmas, 2)
	assert.Equal(t, int64(1), turmas[0].ID)
	assert.Equal(t, int64(2), turmas[1].ID)
	assert.Equal(t, int64(2), pagination.TotalItems)
	assert.Equal(t, 1, pagination.TotalPages)
}

func TestPageTurmasBuscaMatchesCodigo(t *testing.T) {
	turmas, _ := pageTurmas(lecionadaTurmas(), dto.TurmaFilter{Busca: "7a-"}, 1, 10)

	require.Len(t, turmas, 1)
	assert.Equal(t, int64(3), turmas[0].ID)
}

func TestPageTurmasEscolaFilter(t *testing.T) {
	turmas, pagination := pageTurmas(lecionadaTurmas(), dto.TurmaFilter{EscolaID: 2}, 1, 10)

	require.Len(t, turmas, 2)
	assert.Equal(t, int64(3), turmas[0].ID)
	assert.Equal(t, int64(4), turmas[1].ID)
	assert.Equal(t, int64(2), pagination.TotalItems)
}

func TestPageTurmasPagination(t *testing.T) {
	turmas, pagination := pageTurmas(lecionadaTurmas(), dto.TurmaFilter{}, 2, 3)

	require.Len(t, turmas, 1)
	assert.Equal(t, int64(4), turmas[0].ID)
	assert.Equal(t, int64(4), pagination.TotalItems)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.Equal(t, 2, pagination.CurrentPage)
}

func TestPageTurmasPageBeyondEnd(t *testing.T) {
	turmas, pagination := pageTurmas(lecionadaTurmas(), dto.TurmaFilter{}, 5, 10)

	assert.Empty(t, turmas)
	assert.Equal(t, int64(4), pagination.TotalItems)
}
