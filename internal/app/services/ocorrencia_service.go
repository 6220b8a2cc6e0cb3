package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/escolaplus/backend/internal/app/models"
	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/helpers"
)

// OcorrenciaService defines the interface for ocorrencia operations
type OcorrenciaService interface {
	Create(ctx context.Context, alunoID, autorID int64, req *dto.CreateOcorrenciaRequest) (*models.Ocorrencia, error)
	GetByID(ctx context.Context, id int64) (*models.Ocorrencia, error)
	ListByAluno(ctx context.Context, alunoID int64, tipo string) ([]*models.Ocorrencia, error)
	ListVisiveisByAluno(ctx context.Context, alunoID int64) ([]*models.Ocorrencia, error)
	UpdatePartial(ctx context.Context, id, usuarioID int64, papel models.Papel, req *dto.UpdateOcorrenciaRequest) (*models.Ocorrencia, error)
	Delete(ctx context.Context, id, usuarioID int64, papel models.Papel) error
}

// ocorrenciaStore is the repository surface the service needs
type ocorrenciaStore interface {
	Create(ctx context.Context, o *models.Ocorrencia) error
	GetByID(ctx context.Context, id int64) (*models.Ocorrencia, error)
	ListByAluno(ctx context.Context, alunoID int64, tipo *models.TipoOcorrencia) ([]*models.Ocorrencia, error)
	ListVisiveisByAluno(ctx context.Context, alunoID int64) ([]*models.Ocorrencia, error)
	UpdatePartial(ctx context.Context, id int64, req *dto.UpdateOcorrenciaRequest, dataOcorrencia *time.Time) error
	Delete(ctx context.Context, id int64) error
}

// ocorrenciaServiceImpl implements OcorrenciaService
type ocorrenciaServiceImpl struct {
	ocorrenciaRepo ocorrenciaStore
	logger         zerolog.Logger
}

// NewOcorrenciaService creates a new OcorrenciaService
func NewOcorrenciaService(ocorrenciaRepo ocorrenciaStore, logger zerolog.Logger) OcorrenciaService {
	return &ocorrenciaServiceImpl{
		ocorrenciaRepo: ocorrenciaRepo,
		logger:         logger,
	}
}

// Create records an ocorrencia for an aluno. The autor is always the session
// usuario; tipo falls back to OUTRO and the data to today.
func (s *ocorrenciaServiceImpl) Create(ctx context.Context, alunoID, autorID int64, req *dto.CreateOcorrenciaRequest) (*models.Ocorrencia, error) {
	tipo := models.TipoOcorrencia(req.Tipo)
	if req.Tipo == "" {
		tipo = models.OcorrenciaOutro
	}

	dataOcorrencia := helpers.Today()
	if req.DataOcorrencia != "" {
		parsed, err := helpers.ParseDate(req.DataOcorrencia)
		if err != nil {
			return nil, apperrors.NewBadRequestError("dataOcorrencia must be YYYY-MM-DD")
		}
		dataOcorrencia = parsed
	}

	o := &models.Ocorrencia{
		Tipo:                   tipo,
		Titulo:                 req.Titulo,
		Descricao:              req.Descricao,
		DataOcorrencia:         dataOcorrencia,
		VisivelParaResponsavel: req.VisivelParaResponsavel,
		AlunoID:                alunoID,
		AutorID:                autorID,
	}

	if err := s.ocorrenciaRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("ocorrenciaId", o.ID).
		Int64("alunoId", alunoID).
		Str("tipo", string(tipo)).
		Msg("Ocorrencia created")

	return s.ocorrenciaRepo.GetByID(ctx, o.ID)
}

// GetByID retrieves an ocorrencia with its autor
func (s *ocorrenciaServiceImpl) GetByID(ctx context.Context, id int64) (*models.Ocorrencia, error) {
	return s.ocorrenciaRepo.GetByID(ctx, id)
}

// ListByAluno retrieves the ocorrencias of an aluno, optionally narrowed to
// one tipo
func (s *ocorrenciaServiceImpl) ListByAluno(ctx context.Context, alunoID int64, tipo string) ([]*models.Ocorrencia, error) {
	var filter *models.TipoOcorrencia
	if tipo != "" {
		t := models.TipoOcorrencia(tipo)
		if !t.Valid() {
			return nil, apperrors.NewBadRequestError("tipo must be one of ADVERTENCIA, ELOGIO, COMUNICADO, OUTRO")
		}
		filter = &t
	}

	return s.ocorrenciaRepo.ListByAluno(ctx, alunoID, filter)
}

// ListVisiveisByAluno retrieves only the ocorrencias visible to responsaveis
func (s *ocorrenciaServiceImpl) ListVisiveisByAluno(ctx context.Context, alunoID int64) ([]*models.Ocorrencia, error) {
	return s.ocorrenciaRepo.ListVisiveisByAluno(ctx, alunoID)
}

// canModify allows ADMIN and GESTOR to touch any ocorrencia; everyone else
// only their own
func canModify(o *models.Ocorrencia, usuarioID int64, papel models.Papel) bool {
	if papel == models.PapelAdmin || papel == models.PapelGestor {
		return true
	}
	return o.AutorID == usuarioID
}

// UpdatePartial writes only the provided fields, after the authorship check
func (s *ocorrenciaServiceImpl) UpdatePartial(ctx context.Context, id, usuarioID int64, papel models.Papel, req *dto.UpdateOcorrenciaRequest) (*models.Ocorrencia, error) {
	o, err := s.ocorrenciaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(o, usuarioID, papel) {
		return nil, apperrors.NewForbiddenError("only the autor, a gestor or an admin can edit an ocorrencia")
	}

	var dataOcorrencia *time.Time
	if req.DataOcorrencia != nil {
		parsed, err := helpers.ParseDate(*req.DataOcorrencia)
		if err != nil {
			return nil, apperrors.NewBadRequestError("dataOcorrencia must be YYYY-MM-DD")
		}
		dataOcorrencia = &parsed
	}

	if err := s.ocorrenciaRepo.UpdatePartial(ctx, id, req, dataOcorrencia); err != nil {
		return nil, err
	}

	return s.ocorrenciaRepo.GetByID(ctx, id)
}

// Delete removes an ocorrencia, after the authorship check
func (s *ocorrenciaServiceImpl) Delete(ctx context.Context, id, usuarioID int64, papel models.Papel) error {
	o, err := s.ocorrenciaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(o, usuarioID, papel) {
		return apperrors.NewForbiddenError("only the autor, a gestor or an admin can delete an ocorrencia")
	}

	return s.ocorrenciaRepo.Delete(ctx, id)
}
