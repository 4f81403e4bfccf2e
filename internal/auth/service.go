package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dtalent/hr-client/internal"
	usermodel "github.com/dtalent/hr-client/internal/core/datamodel/user"
)

// Gateway is the slice of the remote gateway the auth flow needs. The
// gateway persists the session itself on success.
type Gateway interface {
	SignIn(ctx context.Context, identifier, secret string) (string, usermodel.User, error)
}

// SessionStore is the slice of the session store the auth flow needs beyond
// what the gateway already writes.
type SessionStore interface {
	LoadSession() (string, *usermodel.User, error)
	ClearSession() error
	IsAuthenticated() (bool, error)
}

type Service struct {
	gateway  Gateway
	sessions SessionStore
	logger   *slog.Logger
}

func NewService(gateway Gateway, sessions SessionStore, logger *slog.Logger) *Service {
	return &Service{
		gateway:  gateway,
		sessions: sessions,
		logger:   logger,
	}
}

// SignIn validates the form, authenticates against the backend and returns
// the signed-in user. The session token and user are already persisted when
// this returns. Failures come back as one of the four fixed user-facing
// messages; the backend error stays attached as the cause.
func (s *Service) SignIn(ctx context.Context, dto CredentialsDTO) (usermodel.User, error) {
	if fieldErrs := dto.Validate(); len(fieldErrs) > 0 {
		s.logger.Debug("sign-in blocked by local validation", "fields", len(fieldErrs))
		return usermodel.User{}, &ValidationError{Fields: fieldErrs}
	}

	normalized := dto.Normalized()

	_, u, err := s.gateway.SignIn(ctx, normalized.Identifier, normalized.Secret)
	if err != nil {
		friendly, code := Classify(err)
		s.logger.Warn("sign-in rejected", "code", code, "error", err)
		return usermodel.User{}, internal.NewAuthenticationError(friendly, code).WithCause(err)
	}

	return u, nil
}

// Logout clears the persisted session. Safe to call with no session.
func (s *Service) Logout() error {
	if err := s.sessions.ClearSession(); err != nil {
		s.logger.Error("failed to clear session", "error", err)
		return err
	}
	s.logger.Info("signed out")
	return nil
}

// CurrentSession returns the persisted token and user, if any. Read at app
// start to decide the initial route and at drawer render for the profile
// panel.
func (s *Service) CurrentSession() (string, *usermodel.User, error) {
	return s.sessions.LoadSession()
}

func (s *Service) IsAuthenticated() (bool, error) {
	return s.sessions.IsAuthenticated()
}

// ValidationError carries the per-field messages of a locally rejected
// login form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// Classify maps a backend sign-in failure to one of the four user-facing
// variants. A structured code from the backend wins; the keyword scan over
// the error text is the last-resort branch for older backends that only
// send prose.
func Classify(err error) (string, internal.ErrorCode) {
	if appErr, ok := internal.IsAppError(err); ok {
		switch appErr.Code {
		case internal.ErrCodeInvalidCredentials:
			return MsgInvalidCredentials, internal.ErrCodeInvalidCredentials
		case "WRONG_PASSWORD", "INVALID_PASSWORD":
			return MsgWrongPassword, internal.ErrCodeWrongPassword
		case "WRONG_USERNAME", "USER_NOT_FOUND":
			return MsgWrongUsername, internal.ErrCodeWrongUsername
		}
	}

	lower := strings.ToLower(err.Error())

	mentionsUser := strings.Contains(lower, "user") ||
		strings.Contains(lower, "usuario") ||
		strings.Contains(lower, "username") ||
		strings.Contains(lower, "does not exist") ||
		strings.Contains(lower, "not found")
	mentionsPass := strings.Contains(lower, "password") ||
		strings.Contains(lower, "contrase") ||
		strings.Contains(lower, "pass")
	genericInvalid := strings.Contains(lower, "invalid credentials") ||
		strings.Contains(lower, "invalid username or password") ||
		strings.Contains(lower, "invalid login") ||
		strings.Contains(lower, "invalid") ||
		strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "401")

	switch {
	case genericInvalid || (mentionsUser && mentionsPass):
		return MsgInvalidCredentials, internal.ErrCodeInvalidCredentials
	case mentionsPass:
		return MsgWrongPassword, internal.ErrCodeWrongPassword
	case mentionsUser:
		return MsgWrongUsername, internal.ErrCodeWrongUsername
	default:
		return MsgLoginFailed, internal.ErrCodeLoginFailed
	}
}
