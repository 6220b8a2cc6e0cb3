package dto

// DashboardStats carries the role-scoped counters shown on the landing
// dashboard. Zero-valued counters are omitted from JSON so each papel only
// sees its own panel.
type DashboardStats struct {
	Escolas             int64 `json:"escolas,omitempty"`
	Turmas              int64 `json:"turmas,omitempty"`
	Alunos              int64 `json:"alunos,omitempty"`
	Professores         int64 `json:"professores,omitempty"`
	OcorrenciasRecentes int64 `json:"ocorrenciasRecentes,omitempty"` // last 30 days
}
