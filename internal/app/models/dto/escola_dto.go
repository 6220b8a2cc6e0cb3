package dto

// CreateEscolaRequest creates an escola
type CreateEscolaRequest struct {
	Nome     string  `json:"nome" binding:"required,min=2,max=150"`
	Endereco string  `json:"endereco" binding:"required"`
	Cidade   string  `json:"cidade" binding:"required"`
	Estado   string  `json:"estado" binding:"required,len=2"`
	Telefone string  `json:"telefone" binding:"omitempty,fone"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Website  *string `json:"website,omitempty" binding:"omitempty,url"`
}

// UpdateEscolaRequest is a partial update of an escola
type UpdateEscolaRequest struct {
	Nome     *string `json:"nome,omitempty" binding:"omitempty,min=2,max=150"`
	Endereco *string `json:"endereco,omitempty"`
	Cidade   *string `json:"cidade,omitempty"`
	Estado   *string `json:"estado,omitempty" binding:"omitempty,len=2"`
	Telefone *string `json:"telefone,omitempty" binding:"omitempty,fone"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Website  *string `json:"website,omitempty" binding:"omitempty,url"`
}

// Empty reports whether no field was provided.
func (r *UpdateEscolaRequest) Empty() bool {
	return r.Nome == nil && r.Endereco == nil && r.Cidade == nil &&
		r.Estado == nil && r.Telefone == nil && r.Email == nil && r.Website == nil
}

// AssignGestorRequest puts a gestor in charge of the escola
type AssignGestorRequest struct {
	GestorID int64 `json:"gestorId" binding:"required,gt=0"`
}
