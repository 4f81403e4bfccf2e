package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dtalent/hr-client/internal/employee"
)

var (
	empFilters employee.Filters
	empOrder   string
	empPage    int

	empExportOut string
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List employees",
	Long:  `List employees with server-delegated and client-local filters, sorted and paginated locally.`,
	RunE:  runEmployees,
}

var employeesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered employee list as a spreadsheet",
	RunE:  runEmployeesExport,
}

func init() {
	for _, c := range []*cobra.Command{employeesCmd, employeesExportCmd} {
		flags := c.Flags()
		flags.StringVarP(&empFilters.Query, "query", "q", "", "free-text search over name and email")
		flags.StringVar(&empFilters.Number, "number", "", "employee number")
		flags.StringVar(&empFilters.FirstName, "first-name", "", "first name")
		flags.StringVar(&empFilters.LastName, "last-name", "", "last name")
		flags.StringVar(&empFilters.Email, "email", "", "email")
		flags.StringVar(&empFilters.Area, "sector", "all", "sector")
		flags.StringVar(&empFilters.Cargo, "cargo", "all", "position")
		flags.StringVar(&empFilters.Role, "role", "all", "role")
		flags.StringVar(&empFilters.Turno, "turno", "all", "shift")
		flags.StringVar(&empFilters.TipoRemuneracion, "pay-type", "all", "pay type")
		flags.StringVar(&empFilters.Nacionalidad, "nationality", "all", "nationality")
		flags.StringVar(&empFilters.Estado, "active", "all", "active filter: all, si, no")
		flags.StringVar(&empOrder, "order", string(employee.OrderRecent), "sort order: recent or oldest")
	}
	employeesCmd.Flags().IntVar(&empPage, "page", 1, "page number")
	employeesExportCmd.Flags().StringVarP(&empExportOut, "out", "o", "empleados.xlsx", "output file")

	employeesCmd.AddCommand(employeesExportCmd)
}

func runEmployees(cmd *cobra.Command, _ []string) error {
	deps, err := initializeDependencies()
	if err != nil {
		return err
	}

	svc := employee.NewService(deps.Gateway, deps.Config.App.PageSize, deps.Logger)
	if err := svc.Refresh(context.Background(), empFilters); err != nil {
		return err
	}

	res := svc.VisiblePage(empFilters, employee.Order(empOrder), empPage)

	fmt.Fprintf(cmd.OutOrStdout(), "%s empleados en total, página %d/%d\n\n",
		humanize.Comma(int64(res.Total)), empPage, res.PageCount)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NÚMERO\tNOMBRE\tCORREO\tTELÉFONO\tCARGO\tESTADO")
	for _, e := range res.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.FullName(), e.Email, e.Phone, e.Cargo, e.Status)
	}
	return w.Flush()
}

func runEmployeesExport(cmd *cobra.Command, _ []string) error {
	deps, err := initializeDependencies()
	if err != nil {
		return err
	}

	svc := employee.NewService(deps.Gateway, deps.Config.App.PageSize, deps.Logger)
	if err := svc.Refresh(context.Background(), empFilters); err != nil {
		return err
	}

	out, err := os.Create(empExportOut)
	if err != nil {
		return err
	}
	defer out.Close()

	items := svc.Filtered(empFilters, employee.Order(empOrder))
	if err := employee.ExportXLSX(items, out); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s empleados exportados a %s\n", humanize.Comma(int64(len(items))), empExportOut)
	return nil
}
