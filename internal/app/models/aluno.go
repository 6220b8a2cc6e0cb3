package models

import "time"

// Aluno defines the student model based on the 'alunos' table
type Aluno struct {
	ID             int64         `json:"id" db:"id" example:"1"`
	UsuarioID      int64         `json:"usuarioId" db:"usuario_id" example:"5"`
	Matricula      string        `json:"matricula" db:"matricula" example:"2024001234"` // Enrollment number, unique
	CPF            string        `json:"cpf" db:"cpf" example:"52998224725"`            // Stored as 11 digits
	DataNascimento time.Time     `json:"dataNascimento" db:"data_nascimento"`
	Telefone       string        `json:"telefone" db:"telefone" example:"11987654321"`
	Endereco       string        `json:"endereco" db:"endereco"`
	Cidade         string        `json:"cidade" db:"cidade"`
	Estado         string        `json:"estado" db:"estado" example:"SP"`
	CEP            string        `json:"cep" db:"cep" example:"01310100"`
	Situacao       SituacaoAluno `json:"situacao" db:"situacao" example:"ATIVO"`
	DataMatricula  time.Time     `json:"dataMatricula" db:"data_matricula"`

	// Relations (populated when needed)
	Usuario      *Usuario      `json:"usuario,omitempty"`
	Turmas       []*Turma      `json:"turmas,omitempty"`
	Responsaveis []*Responsavel `json:"responsaveis,omitempty"`
}

// Matricula defines the aluno<->turma join based on the 'matriculas' table
type Matricula struct {
	ID      int64     `json:"id" db:"id"`
	AlunoID int64     `json:"alunoId" db:"aluno_id"`
	TurmaID int64     `json:"turmaId" db:"turma_id"`
	Data    time.Time `json:"data" db:"data"`
	Ativa   bool      `json:"ativa" db:"ativa"`

	Aluno *Aluno `json:"aluno,omitempty"`
	Turma *Turma `json:"turma,omitempty"`
}
