package logger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/dtalent/hr-client/pkg/logger"
)

func TestLogger(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Logger Suite")
}

var _ = ginkgo.Describe("context carrier", func() {
	var attached *slog.Logger

	ginkgo.BeforeEach(func() {
		attached = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	ginkgo.It("returns the attached logger", func() {
		ctx := logger.Attach(context.Background(), attached)
		gomega.Expect(logger.From(ctx)).To(gomega.BeIdenticalTo(attached))
	})

	ginkgo.It("falls back to the process default when nothing is attached", func() {
		gomega.Expect(logger.From(context.Background())).ToNot(gomega.BeNil())
	})

	ginkgo.It("derives a field-scoped logger without touching the attached one", func() {
		ctx := logger.Attach(context.Background(), attached)
		scoped := logger.With(ctx, "request_id", "r-1")

		gomega.Expect(logger.From(scoped)).ToNot(gomega.BeNil())
		gomega.Expect(logger.From(scoped)).ToNot(gomega.BeIdenticalTo(attached))
		gomega.Expect(logger.From(ctx)).To(gomega.BeIdenticalTo(attached))
	})
})
