package models

import "time"

// Ocorrencia represents a behavioral/disciplinary record tied to an aluno,
// based on the 'ocorrencias' table
type Ocorrencia struct {
	ID                    int64          `json:"id" db:"id"`
	Tipo                  TipoOcorrencia `json:"tipo" db:"tipo" example:"ADVERTENCIA"`
	Titulo                string         `json:"titulo" db:"titulo" example:"Atraso"`
	Descricao             string         `json:"descricao" db:"descricao"`
	DataOcorrencia        time.Time      `json:"dataOcorrencia" db:"data_ocorrencia"`
	VisivelParaResponsavel bool          `json:"visivelParaResponsavel" db:"visivel_para_responsavel"`
	AlunoID               int64          `json:"alunoId" db:"aluno_id"`
	AutorID               int64          `json:"autorId" db:"autor_id"`
	CreatedAt             time.Time      `json:"createdAt" db:"created_at"`

	Autor *Usuario `json:"autor,omitempty"`
}

// Responsavel represents a legal guardian of an aluno, based on the
// 'responsaveis' table
type Responsavel struct {
	ID         int64      `json:"id" db:"id"`
	Nome       string     `json:"nome" db:"nome"`
	CPF        string     `json:"cpf" db:"cpf"`
	Email      string     `json:"email" db:"email"`
	Telefone   string     `json:"telefone" db:"telefone"`
	Endereco   string     `json:"endereco" db:"endereco"`
	Parentesco Parentesco `json:"parentesco" db:"parentesco" example:"MAE"`
	AlunoID    int64      `json:"alunoId" db:"aluno_id"`
}
