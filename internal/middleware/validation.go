package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/escolaplus/backend/internal/pkg/brdoc"
)

// RegisterValidators installs the Brazilian document validators on gin's
// binding engine so DTOs can use the `cpf` and `fone` tags
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("cpf", validateCPF); err != nil {
		return err
	}
	return v.RegisterValidation("fone", validateFone)
}

// validateCPF accepts a CPF in digit or formatted form and verifies the
// check digits
func validateCPF(fl validator.FieldLevel) bool {
	return brdoc.ValidCPF(fl.Field().String())
}

// validateFone accepts 10-digit landlines and 11-digit mobile numbers,
// formatted or not
func validateFone(fl validator.FieldLevel) bool {
	digits := brdoc.DigitsOnly(fl.Field().String())
	return len(digits) == 10 || len(digits) == 11
}
