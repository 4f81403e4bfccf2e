package employee

// Shift values as the backend and the UI use them.
const (
	ShiftMorning   = "Mañana"
	ShiftAfternoon = "Tarde"
	ShiftNight     = "Noche"
)

const (
	StatusActive   = "Activo"
	StatusInactive = "Inactivo"
)

const (
	PayTypeMonthly  = "Mensual"
	PayTypeBiweekly = "Quincenal"
	PayTypeWeekly   = "Semanal"
)

// NationalityFallback is the sentinel used when the backend record carries no
// nationality at all.
const NationalityFallback = "OT"

// Employee is the directory entry shown on the employee list. A fetched
// collection is held in memory per screen and replaced wholesale on the next
// fetch; entries are never mutated in place. IDs are assumed unique within
// one fetched collection but not enforced.
type Employee struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	Role             string `json:"role"`
	Cargo            string `json:"cargo"`
	Area             string `json:"area"`
	Turno            string `json:"turno"`
	Status           string `json:"status"`
	TipoRemuneracion string `json:"tipoRemuneracion"`
	Nacionalidad     string `json:"nacionalidad"`
}

func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
