package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/helpers"
)

func TestNewAluno(t *testing.T) {
	aluno, err := newAluno(&dto.CreateAlunoRequest{
		Nome:           "João Pereira",
		Email:          "joao@escola.edu.br",
		Senha:          "s3nh4-forte",
		Matricula:      "2026001",
		CPF:            "529.982.247-25",
		DataNascimento: "2012-03-15",
		Telefone:       "(11) 98888-7777",
		CEP:            "01310-100",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026001", aluno.Matricula)
	assert.Equal(t, "52998224725", aluno.CPF)
	assert.Equal(t, "11988887777", aluno.Telefone)
	assert.Equal(t, "01310100", aluno.CEP)
	assert.Equal(t, models.SituacaoAtivo, aluno.Situacao)
	assert.Equal(t, "2012-03-15", aluno.DataNascimento.Format(helpers.DateLayout))

	// A fresh profile is enrolled today, never at the zero date
	assert.Equal(t, helpers.Today(), aluno.DataMatricula)
	assert.False(t, aluno.DataMatricula.IsZero())
}

func TestNewAlunoBadDataNascimento(t *testing.T) {
	_, err := newAluno(&dto.CreateAlunoRequest{
		Nome:           "João Pereira",
		Matricula:      "2026001",
		CPF:            "529.982.247-25",
		DataNascimento: "15/03/2012",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
