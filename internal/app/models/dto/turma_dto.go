package dto

// CreateTurmaRequest creates a turma inside an escola
type CreateTurmaRequest struct {
	Nome     string `json:"nome" binding:"required,min=2,max=100"`
	Codigo   string `json:"codigo" binding:"required,min=2,max=30"`
	Turno    string `json:"turno" binding:"required,oneof=MATUTINO VESPERTINO NOTURNO"`
	EscolaID int64  `json:"escolaId" binding:"required,gt=0"`
}

// UpdateTurmaRequest is a partial update of a turma
type UpdateTurmaRequest struct {
	Nome   *string `json:"nome,omitempty" binding:"omitempty,min=2,max=100"`
	Codigo *string `json:"codigo,omitempty" binding:"omitempty,min=2,max=30"`
	Turno  *string `json:"turno,omitempty" binding:"omitempty,oneof=MATUTINO VESPERTINO NOTURNO"`
}

// Empty reports whether no field was provided.
func (r *UpdateTurmaRequest) Empty() bool {
	return r.Nome == nil && r.Codigo == nil && r.Turno == nil
}

// AssignDisciplinasRequest assigns several disciplinas to a turma at once,
// optionally putting the same professor on every slot. Applied in a single
// transaction: either every disciplina is assigned or none is.
type AssignDisciplinasRequest struct {
	DisciplinaIDs []int64 `json:"disciplinaIds" binding:"required,min=1,dive,gt=0"`
	ProfessorID   *int64  `json:"professorId,omitempty" binding:"omitempty,gt=0"`
}

// MatricularAlunoRequest enrolls an aluno in the turma
type MatricularAlunoRequest struct {
	AlunoID int64 `json:"alunoId" binding:"required,gt=0"`
}

// TurmaFilter narrows the turma listing
type TurmaFilter struct {
	EscolaID int64
	Busca    string
}
