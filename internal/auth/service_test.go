package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/dtalent/hr-client/internal"
	"github.com/dtalent/hr-client/internal/auth"
	usermodel "github.com/dtalent/hr-client/internal/core/datamodel/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Suite")
}

type stubGateway struct {
	token string
	user  usermodel.User
	err   error

	calls      int
	identifier string
	secret     string
}

func (g *stubGateway) SignIn(ctx context.Context, identifier, secret string) (string, usermodel.User, error) {
	g.calls++
	g.identifier = identifier
	g.secret = secret
	if g.err != nil {
		return "", usermodel.User{}, g.err
	}
	return g.token, g.user, nil
}

type stubSessions struct {
	token   string
	user    *usermodel.User
	cleared bool
}

func (s *stubSessions) LoadSession() (string, *usermodel.User, error) {
	return s.token, s.user, nil
}

func (s *stubSessions) ClearSession() error {
	s.cleared = true
	s.token = ""
	s.user = nil
	return nil
}

func (s *stubSessions) IsAuthenticated() (bool, error) {
	return s.token != "", nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = ginkgo.Describe("Service", func() {
	var (
		gw       *stubGateway
		sessions *stubSessions
		service  *auth.Service
	)

	ginkgo.BeforeEach(func() {
		gw = &stubGateway{token: "abc", user: usermodel.User{ID: 7, Name: "demo"}}
		sessions = &stubSessions{}
		service = auth.NewService(gw, sessions, quietLogger())
	})

	ginkgo.Describe("SignIn", func() {
		ginkgo.It("returns the signed-in user", func() {
			u, err := service.SignIn(context.Background(), auth.CredentialsDTO{Identifier: "demo", Secret: "demo123"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Name).To(gomega.Equal("demo"))
			gomega.Expect(gw.calls).To(gomega.Equal(1))
		})

		ginkgo.It("trims both fields before calling the backend", func() {
			_, err := service.SignIn(context.Background(), auth.CredentialsDTO{Identifier: "  demo  ", Secret: " demo123 "})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(gw.identifier).To(gomega.Equal("demo"))
			gomega.Expect(gw.secret).To(gomega.Equal("demo123"))
		})

		ginkgo.It("rejects an empty form without touching the network", func() {
			_, err := service.SignIn(context.Background(), auth.CredentialsDTO{})

			var vErr *auth.ValidationError
			gomega.Expect(errors.As(err, &vErr)).To(gomega.BeTrue())
			gomega.Expect(vErr.Fields).To(gomega.HaveLen(2))
			gomega.Expect(vErr.Fields[0].Message).To(gomega.Equal("Usuario requerido"))
			gomega.Expect(vErr.Fields[0].Code).To(gomega.Equal(internal.ErrCodeMissingUsername))
			gomega.Expect(vErr.Fields[1].Message).To(gomega.Equal("Contraseña requerida"))
			gomega.Expect(vErr.Fields[1].Code).To(gomega.Equal(internal.ErrCodeMissingPassword))
			gomega.Expect(gw.calls).To(gomega.BeZero())
		})

		ginkgo.It("reports too-short fields with the specific messages", func() {
			_, err := service.SignIn(context.Background(), auth.CredentialsDTO{Identifier: "ab", Secret: "123"})

			var vErr *auth.ValidationError
			gomega.Expect(errors.As(err, &vErr)).To(gomega.BeTrue())
			gomega.Expect(vErr.Fields).To(gomega.HaveLen(2))
			gomega.Expect(vErr.Fields[0].Message).To(gomega.Equal("Usuario incompleto"))
			gomega.Expect(vErr.Fields[0].Code).To(gomega.Equal(internal.ErrCodeUsernameTooShort))
			gomega.Expect(vErr.Fields[1].Message).To(gomega.Equal("Contraseña demasiado corta"))
			gomega.Expect(vErr.Fields[1].Code).To(gomega.Equal(internal.ErrCodePasswordTooShort))
		})

		ginkgo.It("wraps a backend rejection in one of the fixed messages", func() {
			gw.err = internal.NewRequestError("invalid credentials", 401)

			_, err := service.SignIn(context.Background(), auth.CredentialsDTO{Identifier: "demo", Secret: "wrongpass"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeAuthentication))
			gomega.Expect(appErr.Message).To(gomega.Equal(auth.MsgInvalidCredentials))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidCredentials))
			gomega.Expect(appErr.Cause).To(gomega.Equal(gw.err))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("clears the persisted session", func() {
			sessions.token = "abc"

			gomega.Expect(service.Logout()).To(gomega.Succeed())
			gomega.Expect(sessions.cleared).To(gomega.BeTrue())

			authed, err := service.IsAuthenticated()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(authed).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CurrentSession", func() {
		ginkgo.It("returns what the store holds", func() {
			sessions.token = "abc"
			sessions.user = &usermodel.User{Name: "demo"}

			token, u, err := service.CurrentSession()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).To(gomega.Equal("abc"))
			gomega.Expect(u.Name).To(gomega.Equal("demo"))
		})
	})
})

var _ = ginkgo.Describe("Classify", func() {
	ginkgo.DescribeTable("keyword classification",
		func(message, want string) {
			got, _ := auth.Classify(errors.New(message))
			gomega.Expect(got).To(gomega.Equal(want))
		},
		ginkgo.Entry("generic invalid credentials", "invalid credentials", auth.MsgInvalidCredentials),
		ginkgo.Entry("invalid username or password", "invalid username or password", auth.MsgInvalidCredentials),
		ginkgo.Entry("unauthorized", "unauthorized", auth.MsgInvalidCredentials),
		ginkgo.Entry("both fields mentioned", "wrong username or password combination", auth.MsgInvalidCredentials),
		ginkgo.Entry("password only", "the password does not match", auth.MsgWrongPassword),
		ginkgo.Entry("spanish password text", "contraseña incorrecta", auth.MsgWrongPassword),
		ginkgo.Entry("user not found", "no such account: not found", auth.MsgWrongUsername),
		ginkgo.Entry("user does not exist", "that account does not exist", auth.MsgWrongUsername),
		ginkgo.Entry("anything else", "connection reset by peer", auth.MsgLoginFailed),
	)

	ginkgo.It("prefers a structured code over the text", func() {
		err := internal.NewRequestError("something about the user", 401)
		err.Code = internal.ErrorCode("WRONG_PASSWORD")

		got, code := auth.Classify(err)
		gomega.Expect(got).To(gomega.Equal(auth.MsgWrongPassword))
		gomega.Expect(code).To(gomega.Equal(internal.ErrCodeWrongPassword))
	})

	ginkgo.It("maps USER_NOT_FOUND to the username message", func() {
		err := internal.NewRequestError("rejected", 401)
		err.Code = internal.ErrorCode("USER_NOT_FOUND")

		got, code := auth.Classify(err)
		gomega.Expect(got).To(gomega.Equal(auth.MsgWrongUsername))
		gomega.Expect(code).To(gomega.Equal(internal.ErrCodeWrongUsername))
	})
})
