package dashboard

import (
	"context"
	"log/slog"
	"sync"
)

// Counter fetches one indicator's count.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Summary is the dashboard's quick indicators. A false *Known flag means
// that branch failed and its count is a placeholder, not a real zero.
type Summary struct {
	EmployeeCount  int
	EmployeesKnown bool
	ReceiptCount   int
	ReceiptsKnown  bool
}

// Service produces the dashboard summary. The two counts are fetched
// concurrently and joined; either branch substitutes a safe default on its
// own failure so one broken endpoint never blanks the whole summary.
type Service struct {
	employees Counter
	receipts  Counter
	logger    *slog.Logger
}

func NewService(employees, receipts Counter, logger *slog.Logger) *Service {
	return &Service{
		employees: employees,
		receipts:  receipts,
		logger:    logger,
	}
}

func (s *Service) Summary(ctx context.Context) Summary {
	var (
		wg      sync.WaitGroup
		summary Summary
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		count, err := s.employees.Count(ctx)
		if err != nil {
			s.logger.Warn("employee count unavailable", "error", err)
			return
		}
		summary.EmployeeCount = count
		summary.EmployeesKnown = true
	}()

	go func() {
		defer wg.Done()
		count, err := s.receipts.Count(ctx)
		if err != nil {
			s.logger.Warn("receipt count unavailable", "error", err)
			return
		}
		summary.ReceiptCount = count
		summary.ReceiptsKnown = true
	}()

	wg.Wait()
	return summary
}
