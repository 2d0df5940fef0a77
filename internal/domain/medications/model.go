package medications

import "time"

const (
	// DateLayout es el formato de calendario de las entradas (día local del dueño).
	DateLayout = "2006-01-02"
	// TimeLayout es la hora local del día en que corresponde la toma.
	TimeLayout = "15:04"
)

// Entry representa una toma de medicación programada para un día concreto.
// El borrado es un tombstone: Active=false, nunca se elimina la fila.
// Taken solo transiciona false -> true.
type Entry struct {
	ID          string
	OwnerUserID string

	Name      string
	Dosage    string
	Frequency string

	Date string // yyyy-MM-dd
	Time string // HH:mm

	Active bool
	Taken  bool

	TakenAt   *time.Time
	CreatedAt time.Time
}
