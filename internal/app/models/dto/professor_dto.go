package dto

// CreateProfessorRequest creates the usuario account and the professor
// profile in one transaction
type CreateProfessorRequest struct {
	Nome     string `json:"nome" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Senha    string `json:"senha" binding:"required,min=8"`
	CPF      string `json:"cpf" binding:"required,cpf"`
	Telefone string `json:"telefone" binding:"omitempty,fone"`
	Formacao string `json:"formacao"`
}

// UpdateProfessorRequest is a partial update of a professor
type UpdateProfessorRequest struct {
	Nome     *string `json:"nome,omitempty" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Telefone *string `json:"telefone,omitempty" binding:"omitempty,fone"`
	Formacao *string `json:"formacao,omitempty"`
	Ativo    *bool   `json:"ativo,omitempty"`
}

// Empty reports whether no field was provided.
func (r *UpdateProfessorRequest) Empty() bool {
	return r.Nome == nil && r.Email == nil && r.Telefone == nil &&
		r.Formacao == nil && r.Ativo == nil
}

// CreateGestorRequest creates the usuario account and the gestor profile
type CreateGestorRequest struct {
	Nome  string `json:"nome" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required,min=8"`
}

// CreateDisciplinaRequest creates a disciplina
type CreateDisciplinaRequest struct {
	Nome         string `json:"nome" binding:"required,min=2,max=100"`
	CargaHoraria int    `json:"cargaHoraria" binding:"required,gt=0"`
}

// UpdateDisciplinaRequest is a partial update of a disciplina
type UpdateDisciplinaRequest struct {
	Nome         *string `json:"nome,omitempty" binding:"omitempty,min=2,max=100"`
	CargaHoraria *int    `json:"cargaHoraria,omitempty" binding:"omitempty,gt=0"`
}

// Empty reports whether no field was provided.
func (r *UpdateDisciplinaRequest) Empty() bool {
	return r.Nome == nil && r.CargaHoraria == nil
}
