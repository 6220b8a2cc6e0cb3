package models

// Papel defines the access role of a usuario
type Papel string

const (
	PapelAdmin      Papel = "ADMIN"
	PapelGestor     Papel = "GESTOR"
	PapelProfessor  Papel = "PROFESSOR"
	PapelAluno      Papel = "ALUNO"
	PapelSecretaria Papel = "SECRETARIA"
)

// Valid reports whether the papel is one of the known roles.
func (p Papel) Valid() bool {
	switch p {
	case PapelAdmin, PapelGestor, PapelProfessor, PapelAluno, PapelSecretaria:
		return true
	}
	return false
}

// Turno defines the shift a turma runs in
type Turno string

const (
	TurnoMatutino   Turno = "MATUTINO"
	TurnoVespertino Turno = "VESPERTINO"
	TurnoNoturno    Turno = "NOTURNO"
)

// Valid reports whether the turno is known.
func (t Turno) Valid() bool {
	switch t {
	case TurnoMatutino, TurnoVespertino, TurnoNoturno:
		return true
	}
	return false
}

// TipoOcorrencia classifies an ocorrencia record
type TipoOcorrencia string

const (
	OcorrenciaAdvertencia TipoOcorrencia = "ADVERTENCIA"
	OcorrenciaElogio      TipoOcorrencia = "ELOGIO"
	OcorrenciaComunicado  TipoOcorrencia = "COMUNICADO"
	OcorrenciaOutro       TipoOcorrencia = "OUTRO"
)

// Valid reports whether the tipo is known.
func (t TipoOcorrencia) Valid() bool {
	switch t {
	case OcorrenciaAdvertencia, OcorrenciaElogio, OcorrenciaComunicado, OcorrenciaOutro:
		return true
	}
	return false
}

// Parentesco defines the relationship of a responsavel to an aluno
type Parentesco string

const (
	ParentescoPai   Parentesco = "PAI"
	ParentescoMae   Parentesco = "MAE"
	ParentescoAvo   Parentesco = "AVO"
	ParentescoAvoh  Parentesco = "AVOH"
	ParentescoTio   Parentesco = "TIO"
	ParentescoTia   Parentesco = "TIA"
	ParentescoIrmao Parentesco = "IRMAO"
	ParentescoIrma  Parentesco = "IRMA"
	ParentescoOutro Parentesco = "OUTRO"
)

// Valid reports whether the parentesco is known.
func (p Parentesco) Valid() bool {
	switch p {
	case ParentescoPai, ParentescoMae, ParentescoAvo, ParentescoAvoh,
		ParentescoTio, ParentescoTia, ParentescoIrmao, ParentescoIrma, ParentescoOutro:
		return true
	}
	return false
}

// SituacaoAluno defines the enrollment situation of an aluno
type SituacaoAluno string

const (
	SituacaoAtivo       SituacaoAluno = "ATIVO"
	SituacaoTransferido SituacaoAluno = "TRANSFERIDO"
	SituacaoTrancado    SituacaoAluno = "TRANCADO"
	SituacaoConcluido   SituacaoAluno = "CONCLUIDO"
)

// Valid reports whether the situacao is known.
func (s SituacaoAluno) Valid() bool {
	switch s {
	case SituacaoAtivo, SituacaoTransferido, SituacaoTrancado, SituacaoConcluido:
		return true
	}
	return false
}

// StatusFrequencia defines the attendance status for one aluno on one day
type StatusFrequencia string

const (
	FrequenciaPresente    StatusFrequencia = "PRESENTE"
	FrequenciaAusente     StatusFrequencia = "AUSENTE"
	FrequenciaAtrasado    StatusFrequencia = "ATRASADO"
	FrequenciaJustificado StatusFrequencia = "JUSTIFICADO"
)

// Valid reports whether the status is known.
func (s StatusFrequencia) Valid() bool {
	switch s {
	case FrequenciaPresente, FrequenciaAusente, FrequenciaAtrasado, FrequenciaJustificado:
		return true
	}
	return false
}
