package receipt

import (
	"strconv"
	"strings"
	"time"

	receiptmodel "github.com/dtalent/hr-client/internal/core/datamodel/receipt"
	"github.com/dtalent/hr-client/internal/listquery"
)

type Order string

const (
	OrderRecent Order = "recent"
	OrderOldest Order = "oldest"
)

// Filters holds the server-delegated criteria of the receipt list. Unlike
// the employee list, receipt pagination is server-driven, so the page number
// travels with the fetch. The free-text query is the only client-local
// criterion and lives outside this struct.
type Filters struct {
	Year   string
	Month  string
	Sector string // mapped to the backend's "type" param
	Estado string // "all", Pagado, Pendiente; mapped to isSigned
	Sent   string // "all", "si", "no"; mapped to isSended
	Read   string // "all", "si", "no"; mapped to isReaded
}

func (f Filters) ServerParams(page int) map[string]string {
	params := map[string]string{}

	if v := strings.TrimSpace(f.Year); v != "" {
		params["year"] = v
	}
	if v := strings.TrimSpace(f.Month); v != "" {
		params["month"] = v
	}
	if v := f.Sector; v != "" && v != listquery.AllSentinel {
		params["type"] = v
	}
	if v := f.Estado; v != "" && v != listquery.AllSentinel {
		params["isSigned"] = strconv.FormatBool(v == receiptmodel.StatusPaid)
	}
	if v := f.Sent; v != "" && v != listquery.AllSentinel {
		params["isSended"] = strconv.FormatBool(v == "si")
	}
	if v := f.Read; v != "" && v != listquery.AllSentinel {
		params["isReaded"] = strconv.FormatBool(v == "si")
	}

	if page < 1 {
		page = 1
	}
	params["page"] = strconv.Itoa(page)

	return params
}

// Compare orders receipts by their date parsed to a timestamp; recent is
// newest first. An unparseable date sorts as the zero time.
func (o Order) Compare(a, b receiptmodel.Receipt) int {
	ta := parseDate(a.Date)
	tb := parseDate(b.Date)

	if o == OrderOldest {
		return ta.Compare(tb)
	}
	return tb.Compare(ta)
}

func parseDate(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
