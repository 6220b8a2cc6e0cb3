package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrContaDesativada    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUsuarioNotFound    = errors.New("usuario not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsuarioComVinculos = errors.New("usuario has linked records and cannot be deleted")
)

// Aluno errors
var (
	ErrAlunoNotFound       = errors.New("aluno not found")
	ErrMatriculaJaExiste   = errors.New("matricula number already exists")
	ErrCPFJaCadastrado     = errors.New("cpf already registered")
	ErrCPFInvalido         = errors.New("invalid cpf")
	ErrMatriculaDuplicada  = errors.New("aluno already enrolled in this turma")
	ErrMatriculaNotFound   = errors.New("matricula not found")
	ErrResponsavelNotFound = errors.New("responsavel not found")
)

// Escola / Turma errors
var (
	ErrEscolaNotFound        = errors.New("escola not found")
	ErrEscolaJaExiste        = errors.New("escola with this name already exists")
	ErrEscolaComVinculos     = errors.New("escola has turmas and cannot be deleted")
	ErrTurmaNotFound         = errors.New("turma not found")
	ErrTurmaJaExiste         = errors.New("turma with this codigo already exists")
	ErrTurmaComVinculos      = errors.New("turma has matriculas and cannot be deleted")
	ErrDisciplinaNotFound    = errors.New("disciplina not found")
	ErrDisciplinaJaExiste    = errors.New("disciplina with this nome already exists")
	ErrDisciplinaJaVinculada = errors.New("disciplina already assigned to this turma")
	ErrGestorNotFound        = errors.New("gestor not found")
	ErrProfessorNotFound     = errors.New("professor not found")
)

// Ocorrencia / Frequencia / Nota errors
var (
	ErrOcorrenciaNotFound = errors.New("ocorrencia not found")
	ErrFrequenciaNotFound = errors.New("frequencia not found")
	ErrNotaNotFound       = errors.New("nota not found")
	ErrNotaDuplicada      = errors.New("nota already recorded for this bimestre")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
