package employee

import (
	"context"
	"log/slog"
	"sync"

	employeemodel "github.com/dtalent/hr-client/internal/core/datamodel/employee"
	"github.com/dtalent/hr-client/internal/listquery"
)

// Gateway is the slice of the remote gateway the employee list needs.
type Gateway interface {
	FetchEmployees(ctx context.Context, params map[string]string) ([]employeemodel.Employee, error)
}

// Service holds the fetched employee collection for one screen instance and
// derives visible pages from it. A change in a server-delegated filter field
// triggers Refresh; client-local changes only re-derive.
type Service struct {
	gateway  Gateway
	logger   *slog.Logger
	pageSize int

	mu         sync.Mutex
	collection []employeemodel.Employee
	generation uint64
}

func NewService(gateway Gateway, pageSize int, logger *slog.Logger) *Service {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Service{
		gateway:  gateway,
		logger:   logger,
		pageSize: pageSize,
	}
}

// Refresh fetches the collection with the server-delegated params and
// replaces the held collection wholesale. Each fetch is stamped with a
// generation number; a completion that is no longer the latest issued fetch
// is dropped, so a fast-changing filter can never let an older response
// overwrite a newer one. On error the previous collection is kept.
func (s *Service) Refresh(ctx context.Context, f Filters) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	list, err := s.gateway.FetchEmployees(ctx, f.ServerParams())
	if err != nil {
		s.logger.Warn("error fetching employees", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("dropping stale employee fetch", "generation", gen, "latest", s.generation)
		return nil
	}
	s.collection = list
	return nil
}

// VisiblePage derives the page to render from the held collection. The full
// filter and sort pass re-runs from the source collection on every call.
func (s *Service) VisiblePage(f Filters, order Order, page int) listquery.Result[employeemodel.Employee] {
	return listquery.Derive(s.snapshot(), f.Criteria(), order.Compare, listquery.Page{Number: page, Size: s.pageSize})
}

// Filtered returns the whole filtered and sorted collection, unpaginated;
// the export path uses it.
func (s *Service) Filtered(f Filters, order Order) []employeemodel.Employee {
	return listquery.Derive(s.snapshot(), f.Criteria(), order.Compare, listquery.Page{}).Items
}

// Options extracts the distinct non-empty values of a field, in first-seen
// order, for dropdown population.
func (s *Service) Options(extract func(employeemodel.Employee) string) []string {
	seen := map[string]bool{}
	var values []string
	for _, e := range s.snapshot() {
		v := extract(e)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// Count fetches the unfiltered collection size, for the dashboard summary.
func (s *Service) Count(ctx context.Context) (int, error) {
	list, err := s.gateway.FetchEmployees(ctx, nil)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func (s *Service) snapshot() []employeemodel.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection
}
