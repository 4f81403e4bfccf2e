package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dtalent/hr-client/internal/dashboard"
	"github.com/dtalent/hr-client/internal/employee"
	"github.com/dtalent/hr-client/internal/receipt"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the summary indicators",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	deps, err := initializeDependencies()
	if err != nil {
		return err
	}

	employees := employee.NewService(deps.Gateway, deps.Config.App.PageSize, deps.Logger)
	receipts := receipt.NewService(deps.Gateway, deps.Logger)

	svc := dashboard.NewService(employees, receipts, deps.Logger)
	summary := svc.Summary(context.Background())

	fmt.Fprintf(cmd.OutOrStdout(), "Empleados: %s\n", countOrDash(summary.EmployeeCount, summary.EmployeesKnown))
	fmt.Fprintf(cmd.OutOrStdout(), "Recibos:   %s\n", countOrDash(summary.ReceiptCount, summary.ReceiptsKnown))
	return nil
}

func countOrDash(count int, known bool) string {
	if !known {
		return "—"
	}
	return humanize.Comma(int64(count))
}
