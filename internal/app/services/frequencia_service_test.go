package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolaplus/backend/internal/app/models"
)

func TestBuildResumo(t *testing.T) {
	registros := []*models.Frequencia{
		{Status: models.FrequenciaPresente},
		{Status: models.FrequenciaPresente},
		{Status: models.FrequenciaAtrasado},
		{Status: models.FrequenciaAusente},
		{Status: models.FrequenciaJustificado},
	}

	resumo := buildResumo(10, registros)

	assert.Equal(t, int64(10), resumo.AlunoID)
	assert.Equal(t, 5, resumo.Total)
	assert.Equal(t, 2, resumo.Presentes)
	assert.Equal(t, 1, resumo.Ausentes)
	assert.Equal(t, 1, resumo.Atrasados)
	assert.Equal(t, 1, resumo.Justificados)
	// Atrasado counts towards presence: (2+1)/5
	assert.InDelta(t, 60.0, resumo.Percentual, 0.001)
}

func TestBuildResumoEmpty(t *testing.T) {
	resumo := buildResumo(10, nil)

	assert.Equal(t, 0, resumo.Total)
	assert.Zero(t, resumo.Percentual)
	assert.NotNil(t, resumo.Registros, "registros serializes as [] instead of null")
	assert.Empty(t, resumo.Registros)
}

func TestBuildBoletim(t *testing.T) {
	matematica := &models.Disciplina{ID: 1, Nome: "Matemática"}
	portugues := &models.Disciplina{ID: 2, Nome: "Língua Portuguesa"}

	notas := []*models.Nota{
		{AlunoID: 10, DisciplinaID: 2, Bimestre: 1, Valor: 9.0, Disciplina: portugues},
		{AlunoID: 10, DisciplinaID: 2, Bimestre: 2, Valor: 7.0, Disciplina: portugues},
		{AlunoID: 10, DisciplinaID: 1, Bimestre: 1, Valor: 6.5, Disciplina: matematica},
		{AlunoID: 10, DisciplinaID: 1, Bimestre: 3, Valor: 8.5, Disciplina: matematica},
	}

	boletim := buildBoletim(10, notas)

	assert.Equal(t, int64(10), boletim.AlunoID)
	require.Len(t, boletim.Disciplinas, 2)

	// Disciplinas keep the incoming order (sorted by nome upstream)
	lp := boletim.Disciplinas[0]
	assert.Equal(t, "Língua Portuguesa", lp.DisciplinaNome)
	require.NotNil(t, lp.Bimestres[0])
	assert.Equal(t, 9.0, *lp.Bimestres[0])
	require.NotNil(t, lp.Bimestres[1])
	assert.Equal(t, 7.0, *lp.Bimestres[1])
	assert.Nil(t, lp.Bimestres[2])
	assert.Nil(t, lp.Bimestres[3])
	require.NotNil(t, lp.Media)
	assert.InDelta(t, 8.0, *lp.Media, 0.001)

	mat := boletim.Disciplinas[1]
	assert.Equal(t, "Matemática", mat.DisciplinaNome)
	require.NotNil(t, mat.Bimestres[2])
	assert.Equal(t, 8.5, *mat.Bimestres[2])
	// Media averages only the graded bimestres
	require.NotNil(t, mat.Media)
	assert.InDelta(t, 7.5, *mat.Media, 0.001)
}

func TestBuildBoletimEmpty(t *testing.T) {
	boletim := buildBoletim(10, nil)

	assert.Equal(t, int64(10), boletim.AlunoID)
	assert.NotNil(t, boletim.Disciplinas, "disciplinas serializes as [] instead of null")
	assert.Empty(t, boletim.Disciplinas)
}
