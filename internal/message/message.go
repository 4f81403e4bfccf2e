// Package message serves the internal announcements shown on the
// communication screen. The backend exposes no messages endpoint yet, so the
// source is a fixed local list.
package message

// Message is one internal announcement.
type Message struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// TODO: swap the static source for a gateway fetch once the backend exposes
// a messages endpoint.
var announcements = []Message{
	{ID: 1, Title: "Bienvenida", Body: "Nueva plataforma de RRHH disponible."},
	{ID: 2, Title: "Mantenimiento", Body: "Corte programado el sábado 10 a las 22:00."},
	{ID: 3, Title: "Política", Body: "Actualizamos la política de vacaciones."},
}

// List returns the announcements in display order. Callers get a copy so the
// source stays immutable.
func List() []Message {
	out := make([]Message, len(announcements))
	copy(out, announcements)
	return out
}
