package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolaplus/backend/internal/app/models/dto"
	"github.com/escolaplus/backend/internal/pkg/apperrors"
	"github.com/escolaplus/backend/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 404
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUsuarioNotFound),
		errors.Is(err, apperrors.ErrAlunoNotFound),
		errors.Is(err, apperrors.ErrResponsavelNotFound),
		errors.Is(err, apperrors.ErrOcorrenciaNotFound),
		errors.Is(err, apperrors.ErrEscolaNotFound),
		errors.Is(err, apperrors.ErrTurmaNotFound),
		errors.Is(err, apperrors.ErrDisciplinaNotFound),
		errors.Is(err, apperrors.ErrProfessorNotFound),
		errors.Is(err, apperrors.ErrGestorNotFound),
		errors.Is(err, apperrors.ErrMatriculaNotFound),
		errors.Is(err, apperrors.ErrFrequenciaNotFound),
		errors.Is(err, apperrors.ErrNotaNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)

	// 409
	case errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrMatriculaJaExiste),
		errors.Is(err, apperrors.ErrCPFJaCadastrado),
		errors.Is(err, apperrors.ErrMatriculaDuplicada),
		errors.Is(err, apperrors.ErrEscolaJaExiste),
		errors.Is(err, apperrors.ErrEscolaComVinculos),
		errors.Is(err, apperrors.ErrTurmaJaExiste),
		errors.Is(err, apperrors.ErrTurmaComVinculos),
		errors.Is(err, apperrors.ErrDisciplinaJaExiste),
		errors.Is(err, apperrors.ErrDisciplinaJaVinculada),
		errors.Is(err, apperrors.ErrNotaDuplicada),
		errors.Is(err, apperrors.ErrUsuarioComVinculos):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err)

	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrInvalidFormat):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, err)

	// 403
	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrContaDesativada):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)

	// 400
	case errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrCPFInvalido):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

// respond emits the error envelope, surfacing the CustomError message when
// one is present
func respond(c *gin.Context, status int, code dto.ErrorCode, err error) {
	message := err.Error()

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}

	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleValidationError emits a 400 with per-field details for binding
// failures
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
