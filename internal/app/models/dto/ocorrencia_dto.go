package dto

// CreateOcorrenciaRequest creates an ocorrencia for an aluno. Tipo defaults
// to OUTRO and DataOcorrencia to today when omitted; the autor is always the
// session usuario.
type CreateOcorrenciaRequest struct {
	Tipo                   string `json:"tipo" binding:"omitempty,oneof=ADVERTENCIA ELOGIO COMUNICADO OUTRO"`
	Titulo                 string `json:"titulo" binding:"required,min=2,max=200"`
	Descricao              string `json:"descricao" binding:"required"`
	DataOcorrencia         string `json:"dataOcorrencia" binding:"omitempty"` // YYYY-MM-DD
	VisivelParaResponsavel bool   `json:"visivelParaResponsavel"`
}

// UpdateOcorrenciaRequest is a partial update of an ocorrencia
type UpdateOcorrenciaRequest struct {
	Tipo                   *string `json:"tipo,omitempty" binding:"omitempty,oneof=ADVERTENCIA ELOGIO COMUNICADO OUTRO"`
	Titulo                 *string `json:"titulo,omitempty" binding:"omitempty,min=2,max=200"`
	Descricao              *string `json:"descricao,omitempty"`
	DataOcorrencia         *string `json:"dataOcorrencia,omitempty"` // YYYY-MM-DD
	VisivelParaResponsavel *bool   `json:"visivelParaResponsavel,omitempty"`
}

// Empty reports whether no field was provided.
func (r *UpdateOcorrenciaRequest) Empty() bool {
	return r.Tipo == nil && r.Titulo == nil && r.Descricao == nil &&
		r.DataOcorrencia == nil && r.VisivelParaResponsavel == nil
}
