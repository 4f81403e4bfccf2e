package auth

import (
	"strings"

	"github.com/dtalent/hr-client/internal"
)

// CredentialsDTO is the login form payload. Validation happens locally
// before any network call; failures surface as field-level messages.
type CredentialsDTO struct {
	Identifier string `json:"username"`
	Secret     string `json:"password"`
}

// FieldError is one inline form error.
type FieldError struct {
	Field   string             `json:"field"`
	Code    internal.ErrorCode `json:"code"`
	Message string             `json:"message"`
}

const (
	minIdentifierLen = 3
	minSecretLen     = 4
)

// Validate trims and checks both fields, returning every failing field so
// the form can mark them all at once.
func (dto CredentialsDTO) Validate() []FieldError {
	var errs []FieldError

	identifier := strings.TrimSpace(dto.Identifier)
	secret := strings.TrimSpace(dto.Secret)

	switch {
	case identifier == "":
		errs = append(errs, FieldError{Field: "username", Code: internal.ErrCodeMissingUsername, Message: "Usuario requerido"})
	case len(identifier) < minIdentifierLen:
		errs = append(errs, FieldError{Field: "username", Code: internal.ErrCodeUsernameTooShort, Message: "Usuario incompleto"})
	}

	switch {
	case secret == "":
		errs = append(errs, FieldError{Field: "password", Code: internal.ErrCodeMissingPassword, Message: "Contraseña requerida"})
	case len(secret) < minSecretLen:
		errs = append(errs, FieldError{Field: "password", Code: internal.ErrCodePasswordTooShort, Message: "Contraseña demasiado corta"})
	}

	return errs
}

// Normalized returns the DTO with both fields trimmed, the exact values the
// backend receives.
func (dto CredentialsDTO) Normalized() CredentialsDTO {
	return CredentialsDTO{
		Identifier: strings.TrimSpace(dto.Identifier),
		Secret:     strings.TrimSpace(dto.Secret),
	}
}

// User-facing sign-in failure messages. Exactly these four variants reach
// the form, never a raw backend string.
const (
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgWrongPassword      = "Contraseña incorrecta"
	MsgWrongUsername      = "Usuario incorrecto"
	MsgLoginFailed        = "No se pudo iniciar sesión"
)

var ErrValidationFailed = internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed)
