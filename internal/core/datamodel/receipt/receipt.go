package receipt

const (
	StatusPaid    = "Pagado"
	StatusPending = "Pendiente"
)

// Receipt is one payroll receipt row. Date is the ISO-8601 string the
// backend sent (or a synthesized end-of-month date when it sent none);
// Month is always two digits, "01".."12".
type Receipt struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Month  string  `json:"month"`
	Year   int     `json:"year"`
	Status string  `json:"status"`
	Sector string  `json:"sector"`
	Sent   bool    `json:"sent"`
	Read   bool    `json:"read"`
}

// Page is one server-driven page of receipts. NumPages and TotalCount are
// zero when the backend omitted them.
type Page struct {
	Items      []Receipt `json:"items"`
	NumPages   int       `json:"numPages,omitempty"`
	TotalCount int       `json:"totalCount,omitempty"`
	PerPage    int       `json:"perPage,omitempty"`
}
