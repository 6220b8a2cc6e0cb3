package dto

import "github.com/escolaplus/backend/internal/app/models"

// FrequenciaItem is one aluno's status in a roll call
type FrequenciaItem struct {
	AlunoID    int64  `json:"alunoId" binding:"required,gt=0"`
	Status     string `json:"status" binding:"required,oneof=PRESENTE AUSENTE ATRASADO JUSTIFICADO"`
	Observacao string `json:"observacao"`
}

// RegistrarFrequenciaRequest records the whole turma's attendance for one
// date in a single transaction; re-submitting the same date upserts.
type RegistrarFrequenciaRequest struct {
	Data  string           `json:"data" binding:"required"` // YYYY-MM-DD
	Itens []FrequenciaItem `json:"itens" binding:"required,min=1,dive"`
}

// FrequenciaResumoResponse summarizes an aluno's attendance over a period
type FrequenciaResumoResponse struct {
	AlunoID      int64                `json:"alunoId"`
	Total        int                  `json:"total"`
	Presentes    int                  `json:"presentes"`
	Ausentes     int                  `json:"ausentes"`
	Atrasados    int                  `json:"atrasados"`
	Justificados int                  `json:"justificados"`
	Percentual   float64              `json:"percentual"` // presence rate, 0..100
	Registros    []*models.Frequencia `json:"registros"`
}

// NotaItem is one aluno's grade in a batch submission
type NotaItem struct {
	AlunoID int64   `json:"alunoId" binding:"required,gt=0"`
	Valor   float64 `json:"valor" binding:"gte=0,lte=10"`
}

// LancarNotasRequest records grades for one disciplina/bimestre of a turma
// in a single transaction; existing notas for the tuple are overwritten.
type LancarNotasRequest struct {
	DisciplinaID int64      `json:"disciplinaId" binding:"required,gt=0"`
	Bimestre     int        `json:"bimestre" binding:"required,gte=1,lte=4"`
	Itens        []NotaItem `json:"itens" binding:"required,min=1,dive"`
}

// BoletimDisciplina groups an aluno's grades for one disciplina
type BoletimDisciplina struct {
	DisciplinaID   int64       `json:"disciplinaId"`
	DisciplinaNome string      `json:"disciplinaNome"`
	Bimestres      [4]*float64 `json:"bimestres"` // index 0 = 1º bimestre; nil = not graded yet
	Media          *float64    `json:"media,omitempty"`
}

// BoletimResponse is the aluno's grade report
type BoletimResponse struct {
	AlunoID     int64               `json:"alunoId"`
	Disciplinas []BoletimDisciplina `json:"disciplinas"`
}
