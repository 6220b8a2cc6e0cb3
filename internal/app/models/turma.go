package models

// Turma represents a class/cohort based on the 'turmas' table
type Turma struct {
	ID       int64  `json:"id" db:"id"`
	Nome     string `json:"nome" db:"nome" example:"9º Ano A"`
	Codigo   string `json:"codigo" db:"codigo" example:"9A-2024"` // Unique
	Turno    Turno  `json:"turno" db:"turno" example:"MATUTINO"`
	EscolaID int64  `json:"escolaId" db:"escola_id"`

	Escola      *Escola           `json:"escola,omitempty"`
	Disciplinas []*TurmaDisciplina `json:"disciplinas,omitempty"`
	TotalAlunos int               `json:"totalAlunos,omitempty"`
}

// Disciplina represents a subject based on the 'disciplinas' table
type Disciplina struct {
	ID           int64  `json:"id" db:"id"`
	Nome         string `json:"nome" db:"nome" example:"Matemática"`
	CargaHoraria int    `json:"cargaHoraria" db:"carga_horaria" example:"80"` // Hours per year
}

// TurmaDisciplina joins a turma with a disciplina and an optional professor,
// based on the 'turma_disciplinas' table. ProfessorID is nil while the slot
// is unassigned.
type TurmaDisciplina struct {
	ID           int64  `json:"id" db:"id"`
	TurmaID      int64  `json:"turmaId" db:"turma_id"`
	DisciplinaID int64  `json:"disciplinaId" db:"disciplina_id"`
	ProfessorID  *int64 `json:"professorId,omitempty" db:"professor_id"`

	Disciplina *Disciplina `json:"disciplina,omitempty"`
	Professor  *Professor  `json:"professor,omitempty"`
}
