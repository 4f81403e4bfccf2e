package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/dtalent/hr-client/internal"
	receiptmodel "github.com/dtalent/hr-client/internal/core/datamodel/receipt"
)

// FileGateway is the slice of the remote gateway the retrieval chain needs.
type FileGateway interface {
	FetchReceiptFileURL(ctx context.Context, id int64) (string, error)
	FetchReceiptBinary(ctx context.Context, id int64) ([]byte, error)
	Download(ctx context.Context, fileURL string) ([]byte, error)
}

type Source string

const (
	SourceDirectURL      Source = "direct_url"
	SourceBinaryFallback Source = "binary_fallback"
)

// FileHandle is the displayable/shareable outcome of the retrieval chain.
// Path is the materialized local file; when materialization from a direct
// URL failed, Path is empty, PreviewAvailable is false and DirectURL remains
// usable for opening externally.
type FileHandle struct {
	Path             string
	DirectURL        string
	Source           Source
	PreviewAvailable bool
}

// Retriever runs the ordered retrieval chain for a receipt file: direct URL
// first, raw binary fallback second. No retries within a step, no caching
// between invocations; every open re-runs the whole chain.
type Retriever struct {
	gateway FileGateway
	dir     string
	logger  *slog.Logger
}

func NewRetriever(gateway FileGateway, scratchDir string, logger *slog.Logger) *Retriever {
	return &Retriever{
		gateway: gateway,
		dir:     scratchDir,
		logger:  logger,
	}
}

// ObtainFile obtains a displayable/shareable handle for the receipt, or
// fails with a retrieval error once both steps are exhausted.
func (r *Retriever) ObtainFile(ctx context.Context, rc receiptmodel.Receipt) (*FileHandle, error) {
	url, err := r.gateway.FetchReceiptFileURL(ctx, rc.ID)
	if err == nil {
		data, dlErr := r.gateway.Download(ctx, url)
		if dlErr != nil {
			// degraded: keep the direct URL, preview unavailable
			r.logger.Warn("could not materialize receipt from direct url", "receipt_id", rc.ID, "error", dlErr)
			return &FileHandle{
				DirectURL: url,
				Source:    SourceDirectURL,
			}, nil
		}

		path, wErr := r.writeScratchFile(rc, data)
		if wErr != nil {
			r.logger.Warn("could not write receipt scratch file", "receipt_id", rc.ID, "error", wErr)
			return &FileHandle{
				DirectURL: url,
				Source:    SourceDirectURL,
			}, nil
		}

		return &FileHandle{
			Path:             path,
			DirectURL:        url,
			Source:           SourceDirectURL,
			PreviewAvailable: true,
		}, nil
	}

	r.logger.Warn("direct receipt url unavailable, trying binary fallback", "receipt_id", rc.ID, "error", err)

	data, binErr := r.gateway.FetchReceiptBinary(ctx, rc.ID)
	if binErr != nil {
		r.logger.Error("receipt retrieval exhausted", "receipt_id", rc.ID, "error", binErr)
		return nil, internal.NewRetrievalError("no se pudo abrir el recibo", internal.ErrCodeRetrievalExhausted).WithCause(binErr)
	}

	path, wErr := r.writeScratchFile(rc, data)
	if wErr != nil {
		return nil, internal.NewRetrievalError("no se pudo abrir el recibo", internal.ErrCodeRetrievalExhausted).WithCause(wErr)
	}

	return &FileHandle{
		Path:             path,
		Source:           SourceBinaryFallback,
		PreviewAvailable: true,
	}, nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func (r *Retriever) writeScratchFile(rc receiptmodel.Receipt, data []byte) (string, error) {
	dir := filepath.Join(r.dir, "receipts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := whitespaceRe.ReplaceAllString(rc.Name, "_")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s-%d.pdf", name, rc.Month, rc.Year))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
