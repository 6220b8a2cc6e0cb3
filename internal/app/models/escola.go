package models

// Escola represents a school based on the 'escolas' table
type Escola struct {
	ID       int64   `json:"id" db:"id"`
	Nome     string  `json:"nome" db:"nome"`
	Endereco string  `json:"endereco" db:"endereco"`
	Cidade   string  `json:"cidade" db:"cidade"`
	Estado   string  `json:"estado" db:"estado"`
	Telefone string  `json:"telefone" db:"telefone"`
	Email    string  `json:"email" db:"email"`
	Website  *string `json:"website,omitempty" db:"website"`
	GestorID *int64  `json:"gestorId,omitempty" db:"gestor_id"` // Optional; an escola may have no gestor yet

	Gestor *Gestor  `json:"gestor,omitempty"`
	Turmas []*Turma `json:"turmas,omitempty"`
}

// Gestor represents a school manager profile based on the 'gestores' table
type Gestor struct {
	ID        int64 `json:"id" db:"id"`
	UsuarioID int64 `json:"usuarioId" db:"usuario_id"`

	Usuario *Usuario `json:"usuario,omitempty"`
}

// Professor represents a teacher profile based on the 'professores' table
type Professor struct {
	ID        int64  `json:"id" db:"id"`
	UsuarioID int64  `json:"usuarioId" db:"usuario_id"`
	CPF       string `json:"cpf" db:"cpf"`
	Telefone  string `json:"telefone" db:"telefone"`
	Formacao  string `json:"formacao" db:"formacao"` // Academic background

	Usuario *Usuario `json:"usuario,omitempty"`
}
