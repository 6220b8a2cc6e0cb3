package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAlunoRequestEmpty(t *testing.T) {
	var req UpdateAlunoRequest
	assert.True(t, req.Empty())

	nome := "Maria Souza"
	req.Nome = &nome
	assert.False(t, req.Empty())
}

func TestUpdateAlunoRequestPartialDecode(t *testing.T) {
	// Only the provided keys become non-nil; absent keys stay untouched
	raw := `{"telefone": "11987654321", "situacao": "TRANSFERIDO"}`

	var req UpdateAlunoRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	require.NotNil(t, req.Telefone)
	assert.Equal(t, "11987654321", *req.Telefone)
	require.NotNil(t, req.Situacao)
	assert.Equal(t, "TRANSFERIDO", *req.Situacao)

	assert.Nil(t, req.Nome)
	assert.Nil(t, req.Email)
	assert.Nil(t, req.DataNascimento)
	assert.False(t, req.Empty())
}

func TestUpdateOcorrenciaRequestEmpty(t *testing.T) {
	var req UpdateOcorrenciaRequest
	assert.True(t, req.Empty())

	visivel := false
	req.VisivelParaResponsavel = &visivel
	assert.False(t, req.Empty(), "an explicit false still counts as a change")
}
