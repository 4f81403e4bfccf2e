package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dtalent/hr-client/internal"
	receiptmodel "github.com/dtalent/hr-client/internal/core/datamodel/receipt"
	"github.com/dtalent/hr-client/internal/receipt"
)

var (
	rcFilters receipt.Filters
	rcQuery   string
	rcOrder   string
	rcPage    int
)

var receiptsCmd = &cobra.Command{
	Use:   "receipts",
	Short: "List payroll receipts",
	Long:  `List payroll receipts with server-driven pagination and a client-local text filter.`,
	RunE:  runReceipts,
}

var receiptsOpenCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Fetch a receipt file via the retrieval fallback chain",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceiptsOpen,
}

func init() {
	flags := receiptsCmd.PersistentFlags()
	flags.StringVar(&rcFilters.Year, "year", "", "year")
	flags.StringVar(&rcFilters.Month, "month", "", "month 01..12")
	flags.StringVar(&rcFilters.Sector, "sector", "all", "receipt type")
	flags.StringVar(&rcFilters.Estado, "status", "all", "status: all, Pagado, Pendiente")
	flags.StringVar(&rcFilters.Sent, "sent", "all", "sent filter: all, si, no")
	flags.StringVar(&rcFilters.Read, "read", "all", "read filter: all, si, no")
	flags.IntVar(&rcPage, "page", 1, "server page number")

	receiptsCmd.Flags().StringVarP(&rcQuery, "query", "q", "", "free-text search over receipt names")
	receiptsCmd.Flags().StringVar(&rcOrder, "order", string(receipt.OrderRecent), "sort order: recent or oldest")

	receiptsCmd.AddCommand(receiptsOpenCmd)
}

func runReceipts(cmd *cobra.Command, _ []string) error {
	deps, err := initializeDependencies()
	if err != nil {
		return err
	}

	svc := receipt.NewService(deps.Gateway, deps.Logger)
	if err := svc.Refresh(context.Background(), rcFilters, rcPage); err != nil {
		return err
	}

	items := svc.Visible(rcQuery, receipt.Order(rcOrder))

	fmt.Fprintf(cmd.OutOrStdout(), "%d recibos, página %d/%d\n\n", len(items), rcPage, svc.PageCount())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tPERÍODO\tIMPORTE\tESTADO\tENVIADO\tLEÍDO")
	for _, r := range items {
		fmt.Fprintf(w, "%d\t%s\t%s/%d\t$%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Month, r.Year, humanize.Commaf(r.Amount), r.Status, siNo(r.Sent), siNo(r.Read))
	}
	return w.Flush()
}

func runReceiptsOpen(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid receipt id %q", args[0])
	}

	deps, err := initializeDependencies()
	if err != nil {
		return err
	}

	ctx := context.Background()

	svc := receipt.NewService(deps.Gateway, deps.Logger)
	target := receiptmodel.Receipt{ID: id, Name: "Recibo Nómina"}
	if err := svc.Refresh(ctx, rcFilters, rcPage); err == nil {
		for _, r := range svc.Visible("", receipt.OrderRecent) {
			if r.ID == id {
				target = r
				break
			}
		}
	}

	retriever := receipt.NewRetriever(deps.Gateway, filepath.Join(os.TempDir(), "hr-client"), deps.Logger)
	handle, err := retriever.ObtainFile(ctx, target)
	if errors.Is(err, internal.ErrRetrievalExhausted) {
		return fmt.Errorf("%s (recibo %d)", internal.ErrRetrievalExhausted.Message, id)
	}
	if err != nil {
		return err
	}

	if !handle.PreviewAvailable {
		fmt.Fprintf(cmd.OutOrStdout(), "Vista previa no disponible; abrir externamente: %s\n", handle.DirectURL)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archivo listo: %s\n", handle.Path)
	return nil
}

func siNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}
