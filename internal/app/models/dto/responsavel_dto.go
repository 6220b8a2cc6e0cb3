package dto

// CreateResponsavelRequest attaches a guardian to an aluno
type CreateResponsavelRequest struct {
	Nome       string `json:"nome" binding:"required,min=2,max=100"`
	CPF        string `json:"cpf" binding:"required,cpf"`
	Email      string `json:"email" binding:"omitempty,email"`
	Telefone   string `json:"telefone" binding:"required,fone"`
	Endereco   string `json:"endereco"`
	Parentesco string `json:"parentesco" binding:"required,oneof=PAI MAE AVO AVOH TIO TIA IRMAO IRMA OUTRO"`
}

// UpdateResponsavelRequest is a partial update of a responsavel
type UpdateResponsavelRequest struct {
	Nome       *string `json:"nome,omitempty" binding:"omitempty,min=2,max=100"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Telefone   *string `json:"telefone,omitempty" binding:"omitempty,fone"`
	Endereco   *string `json:"endereco,omitempty"`
	Parentesco *string `json:"parentesco,omitempty" binding:"omitempty,oneof=PAI MAE AVO AVOH TIO TIA IRMAO IRMA OUTRO"`
}

// Empty reports whether no field was provided.
func (r *UpdateResponsavelRequest) Empty() bool {
	return r.Nome == nil && r.Email == nil && r.Telefone == nil &&
		r.Endereco == nil && r.Parentesco == nil
}
