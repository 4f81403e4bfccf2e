package employee

import (
	"cmp"
	"strconv"
	"strings"

	employeemodel "github.com/dtalent/hr-client/internal/core/datamodel/employee"
	"github.com/dtalent/hr-client/internal/listquery"
)

type Order string

const (
	OrderRecent Order = "recent"
	OrderOldest Order = "oldest"
)

// Filters holds every criterion the employee list understands. Two tiers:
// nationality, number, first/last name and email are server-delegated (they
// narrow the fetch); everything else is client-local and re-filters the
// already-fetched collection without a round-trip. The text fields are
// applied locally as well, so typing narrows instantly while the next fetch
// catches up.
type Filters struct {
	Query     string // free text over name and email
	Number    string
	FirstName string
	LastName  string
	Email     string

	Area             string
	Cargo            string
	Role             string
	Turno            string
	TipoRemuneracion string
	Nacionalidad     string
	Estado           string // "all", "si", "no"
}

// ServerParams returns the query params for the server-delegated tier.
func (f Filters) ServerParams() map[string]string {
	params := map[string]string{}

	if v := choiceValue(f.Nacionalidad); v != "" {
		params["nationality"] = v
	}
	if v := strings.TrimSpace(f.Number); v != "" {
		params["employeeNumber"] = v
	}
	if v := strings.TrimSpace(f.FirstName); v != "" {
		params["firstName"] = v
	}
	if v := strings.TrimSpace(f.LastName); v != "" {
		params["lastName"] = v
	}
	if v := strings.TrimSpace(f.Email); v != "" {
		params["email"] = v
	}

	return params
}

// Criteria returns the AND-combined local predicates.
func (f Filters) Criteria() []listquery.Predicate[employeemodel.Employee] {
	estado := ""
	switch f.Estado {
	case "si":
		estado = employeemodel.StatusActive
	case "no":
		estado = employeemodel.StatusInactive
	}

	return []listquery.Predicate[employeemodel.Employee]{
		listquery.TextContains(f.Query, func(e employeemodel.Employee) string {
			return e.FirstName + " " + e.LastName + " " + e.Email
		}),
		listquery.TextContains(f.Number, func(e employeemodel.Employee) string {
			return strconv.FormatInt(e.ID, 10)
		}),
		listquery.TextContains(f.FirstName, func(e employeemodel.Employee) string { return e.FirstName }),
		listquery.TextContains(f.LastName, func(e employeemodel.Employee) string { return e.LastName }),
		listquery.TextContains(f.Email, func(e employeemodel.Employee) string { return e.Email }),
		listquery.Choice(choiceValue(f.Area), func(e employeemodel.Employee) string { return e.Area }),
		listquery.Choice(choiceValue(f.Cargo), func(e employeemodel.Employee) string { return e.Cargo }),
		listquery.Choice(choiceValue(f.Role), func(e employeemodel.Employee) string { return e.Role }),
		listquery.Choice(choiceValue(f.Turno), func(e employeemodel.Employee) string { return e.Turno }),
		listquery.Choice(choiceValue(f.TipoRemuneracion), func(e employeemodel.Employee) string { return e.TipoRemuneracion }),
		listquery.Choice(choiceValue(f.Nacionalidad), func(e employeemodel.Employee) string { return e.Nacionalidad }),
		listquery.Choice(estado, func(e employeemodel.Employee) string { return e.Status }),
	}
}

func choiceValue(v string) string {
	v = strings.TrimSpace(v)
	if v == listquery.AllSentinel {
		return ""
	}
	return v
}

// Compare returns the stable comparator for the order: recent is id
// descending, oldest is id ascending.
func (o Order) Compare(a, b employeemodel.Employee) int {
	if o == OrderOldest {
		return cmp.Compare(a.ID, b.ID)
	}
	return cmp.Compare(b.ID, a.ID)
}
