package dto

import (
	"time"

	"github.com/escolaplus/backend/internal/app/models"
)

// CreateAlunoRequest creates the usuario account and the aluno profile in one
// call; TurmaID, when present, also enrolls the aluno. The whole operation is
// transactional.
type CreateAlunoRequest struct {
	Nome           string `json:"nome" binding:"required,min=2,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Senha          string `json:"senha" binding:"required,min=8"`
	Matricula      string `json:"matricula" binding:"required"`
	CPF            string `json:"cpf" binding:"required,cpf"`
	DataNascimento string `json:"dataNascimento" binding:"required"` // YYYY-MM-DD
	Telefone       string `json:"telefone" binding:"omitempty,fone"`
	Endereco       string `json:"endereco"`
	Cidade         string `json:"cidade"`
	Estado         string `json:"estado" binding:"omitempty,len=2"`
	CEP            string `json:"cep"`
	TurmaID        *int64 `json:"turmaId,omitempty"`
}

// UpdateAlunoRequest is a partial update: nil fields are left untouched.
// Replaces the dotted-path edit buffer of the old client with typed fields.
type UpdateAlunoRequest struct {
	Nome           *string `json:"nome,omitempty" binding:"omitempty,min=2,max=100"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Telefone       *string `json:"telefone,omitempty" binding:"omitempty,fone"`
	Endereco       *string `json:"endereco,omitempty"`
	Cidade         *string `json:"cidade,omitempty"`
	Estado         *string `json:"estado,omitempty" binding:"omitempty,len=2"`
	CEP            *string `json:"cep,omitempty"`
	DataNascimento *string `json:"dataNascimento,omitempty"` // YYYY-MM-DD
	Situacao       *string `json:"situacao,omitempty" binding:"omitempty,oneof=ATIVO TRANSFERIDO TRANCADO CONCLUIDO"`
}

// Empty reports whether no field was provided.
func (r *UpdateAlunoRequest) Empty() bool {
	return r.Nome == nil && r.Email == nil && r.Telefone == nil &&
		r.Endereco == nil && r.Cidade == nil && r.Estado == nil &&
		r.CEP == nil && r.DataNascimento == nil && r.Situacao == nil
}

// AlunoResponse renders an aluno with formatted document fields
type AlunoResponse struct {
	ID             int64                 `json:"id"`
	Nome           string                `json:"nome"`
	Email          string                `json:"email"`
	Matricula      string                `json:"matricula"`
	CPF            string                `json:"cpf"`          // formatted 000.000.000-00
	Telefone       string                `json:"telefone"`     // formatted (00) 00000-0000
	DataNascimento string                `json:"dataNascimento"`
	Endereco       string                `json:"endereco"`
	Cidade         string                `json:"cidade"`
	Estado         string                `json:"estado"`
	CEP            string                `json:"cep"`
	Situacao       models.SituacaoAluno  `json:"situacao"`
	DataMatricula  time.Time             `json:"dataMatricula"`
	Turmas         []*models.Turma       `json:"turmas,omitempty"`
	Responsaveis   []*models.Responsavel `json:"responsaveis,omitempty"`
}

// AlunoListResponse is the paginated aluno listing
type AlunoListResponse struct {
	Alunos     []AlunoResponse `json:"alunos"`
	Pagination PaginationInfo  `json:"pagination"`
}

// AlunoFilter narrows the aluno listing; zero values mean "no filter"
type AlunoFilter struct {
	Busca    string
	TurmaID  int64
	EscolaID int64
	Situacao models.SituacaoAluno
}
