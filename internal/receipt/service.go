package receipt

import (
	"context"
	"log/slog"
	"sync"

	receiptmodel "github.com/dtalent/hr-client/internal/core/datamodel/receipt"
	"github.com/dtalent/hr-client/internal/listquery"
)

// Gateway is the slice of the remote gateway the receipt list needs.
type Gateway interface {
	FetchReceipts(ctx context.Context, params map[string]string) (receiptmodel.Page, error)
}

// Service holds the currently fetched receipt page. The server does the
// heavy filtering and pagination; the client overlays a free-text name
// filter and the sort order on what arrived, so the displayed count can be
// smaller than the server page size.
type Service struct {
	gateway Gateway
	logger  *slog.Logger

	mu         sync.Mutex
	items      []receiptmodel.Receipt
	pageCount  int
	totalCount int
	generation uint64
}

func NewService(gateway Gateway, logger *slog.Logger) *Service {
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

// Refresh fetches one server page. Generation stamping drops completions
// that are no longer the latest issued fetch; on error the previous page is
// kept.
func (s *Service) Refresh(ctx context.Context, f Filters, page int) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	res, err := s.gateway.FetchReceipts(ctx, f.ServerParams(page))
	if err != nil {
		s.logger.Warn("error fetching receipts", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("dropping stale receipt fetch", "generation", gen, "latest", s.generation)
		return nil
	}
	s.items = res.Items
	if res.NumPages > 0 {
		s.pageCount = res.NumPages
	}
	if res.TotalCount > 0 {
		s.totalCount = res.TotalCount
	}
	return nil
}

// Visible derives the rows to render from the fetched page: free-text name
// filter plus date order, re-run from the page on every call.
func (s *Service) Visible(query string, order Order) []receiptmodel.Receipt {
	criteria := []listquery.Predicate[receiptmodel.Receipt]{
		listquery.TextContains(query, func(r receiptmodel.Receipt) string { return r.Name }),
	}
	return listquery.Derive(s.snapshot(), criteria, order.Compare, listquery.Page{}).Items
}

// PageCount is the server-reported page count, at least 1.
func (s *Service) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pageCount < 1 {
		return 1
	}
	return s.pageCount
}

// SectorOptions extracts the distinct sectors of the fetched page, in
// first-seen order.
func (s *Service) SectorOptions() []string {
	seen := map[string]bool{}
	var values []string
	for _, r := range s.snapshot() {
		if r.Sector == "" || seen[r.Sector] {
			continue
		}
		seen[r.Sector] = true
		values = append(values, r.Sector)
	}
	return values
}

// Count fetches the first page and returns the server-reported total,
// falling back to the page length when the backend omits it. The dashboard
// summary uses it.
func (s *Service) Count(ctx context.Context) (int, error) {
	res, err := s.gateway.FetchReceipts(ctx, Filters{}.ServerParams(1))
	if err != nil {
		return 0, err
	}
	if res.TotalCount > 0 {
		return res.TotalCount, nil
	}
	return len(res.Items), nil
}

func (s *Service) snapshot() []receiptmodel.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}
