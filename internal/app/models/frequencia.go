package models

import "time"

// Frequencia represents one aluno's attendance on one day for a turma,
// based on the 'frequencias' table. Unique per (aluno, turma, data).
type Frequencia struct {
	ID         int64            `json:"id" db:"id"`
	AlunoID    int64            `json:"alunoId" db:"aluno_id"`
	TurmaID    int64            `json:"turmaId" db:"turma_id"`
	Data       time.Time        `json:"data" db:"data"`
	Status     StatusFrequencia `json:"status" db:"status" example:"PRESENTE"`
	Observacao string           `json:"observacao,omitempty" db:"observacao"`
	AutorID    int64            `json:"autorId" db:"autor_id"`

	Aluno *Aluno `json:"aluno,omitempty"`
}

// Nota represents one grade for an aluno in a disciplina/bimestre, based on
// the 'notas' table. Unique per (aluno, turma, disciplina, bimestre).
type Nota struct {
	ID           int64   `json:"id" db:"id"`
	AlunoID      int64   `json:"alunoId" db:"aluno_id"`
	TurmaID      int64   `json:"turmaId" db:"turma_id"`
	DisciplinaID int64   `json:"disciplinaId" db:"disciplina_id"`
	Bimestre     int     `json:"bimestre" db:"bimestre" example:"1"` // 1..4
	Valor        float64 `json:"valor" db:"valor" example:"8.5"`     // 0..10
	AutorID      int64   `json:"autorId" db:"autor_id"`

	Disciplina *Disciplina `json:"disciplina,omitempty"`
}
