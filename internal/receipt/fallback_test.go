package receipt_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/dtalent/hr-client/internal"
	receiptmodel "github.com/dtalent/hr-client/internal/core/datamodel/receipt"
	"github.com/dtalent/hr-client/internal/receipt"
)

type stubFileGateway struct {
	fileURL    string
	fileURLErr error

	downloadData []byte
	downloadErr  error

	binaryData []byte
	binaryErr  error

	downloadedURL string
}

func (g *stubFileGateway) FetchReceiptFileURL(ctx context.Context, id int64) (string, error) {
	return g.fileURL, g.fileURLErr
}

func (g *stubFileGateway) FetchReceiptBinary(ctx context.Context, id int64) ([]byte, error) {
	return g.binaryData, g.binaryErr
}

func (g *stubFileGateway) Download(ctx context.Context, fileURL string) ([]byte, error) {
	g.downloadedURL = fileURL
	return g.downloadData, g.downloadErr
}

var _ = ginkgo.Describe("Retriever", func() {
	var (
		gw        *stubFileGateway
		retriever *receipt.Retriever
		dir       string
		rc        receiptmodel.Receipt
	)

	ginkgo.BeforeEach(func() {
		gw = &stubFileGateway{
			fileURL:      "https://files.example.com/9.pdf",
			downloadData: []byte("%PDF-direct"),
			binaryData:   []byte("%PDF-fallback"),
		}
		dir = ginkgo.GinkgoT().TempDir()
		retriever = receipt.NewRetriever(gw, dir, quietLogger())
		rc = receiptmodel.Receipt{ID: 9, Name: "Recibo Nómina", Month: "05", Year: 2025}
	})

	ginkgo.It("materializes the file from the direct url", func() {
		handle, err := retriever.ObtainFile(context.Background(), rc)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(handle.Source).To(gomega.Equal(receipt.SourceDirectURL))
		gomega.Expect(handle.PreviewAvailable).To(gomega.BeTrue())
		gomega.Expect(handle.DirectURL).To(gomega.Equal(gw.fileURL))
		gomega.Expect(gw.downloadedURL).To(gomega.Equal(gw.fileURL))

		gomega.Expect(handle.Path).To(gomega.Equal(filepath.Join(dir, "receipts", "Recibo_Nómina_05-2025.pdf")))
		data, readErr := os.ReadFile(handle.Path)
		gomega.Expect(readErr).ToNot(gomega.HaveOccurred())
		gomega.Expect(data).To(gomega.Equal([]byte("%PDF-direct")))
	})

	ginkgo.It("degrades to the bare url when the download fails", func() {
		gw.downloadErr = errors.New("network down")

		handle, err := retriever.ObtainFile(context.Background(), rc)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(handle.Source).To(gomega.Equal(receipt.SourceDirectURL))
		gomega.Expect(handle.PreviewAvailable).To(gomega.BeFalse())
		gomega.Expect(handle.Path).To(gomega.BeEmpty())
		gomega.Expect(handle.DirectURL).To(gomega.Equal(gw.fileURL))
	})

	ginkgo.It("falls back to the binary source when the url step fails", func() {
		gw.fileURLErr = internal.NewRetrievalError("respuesta inválida: falta URL del archivo", internal.ErrCodeFileURLUnavailable)

		handle, err := retriever.ObtainFile(context.Background(), rc)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(handle.Source).To(gomega.Equal(receipt.SourceBinaryFallback))
		gomega.Expect(handle.PreviewAvailable).To(gomega.BeTrue())
		gomega.Expect(handle.DirectURL).To(gomega.BeEmpty())

		data, readErr := os.ReadFile(handle.Path)
		gomega.Expect(readErr).ToNot(gomega.HaveOccurred())
		gomega.Expect(data).To(gomega.Equal([]byte("%PDF-fallback")))
	})

	ginkgo.It("fails with a retrieval error once both steps are exhausted", func() {
		gw.fileURLErr = errors.New("404")
		gw.binaryErr = errors.New("fallback host unreachable")

		handle, err := retriever.ObtainFile(context.Background(), rc)

		gomega.Expect(handle).To(gomega.BeNil())
		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeRetrieval))
		gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeRetrievalExhausted))
		gomega.Expect(errors.Is(err, internal.ErrRetrievalExhausted)).To(gomega.BeTrue())
		gomega.Expect(errors.Is(err, gw.binaryErr)).To(gomega.BeTrue())
	})
})
