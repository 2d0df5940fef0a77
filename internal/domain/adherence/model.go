package adherence

import "med-adherence-tracker/internal/domain/medications"

// DayStatus es el estado agregado de un día para el calendario.
// @Enum taken, missed
type DayStatus string

const (
	DayTaken  DayStatus = "taken"
	DayMissed DayStatus = "missed"
)

// Summary agrega la adherencia de un mes calendario anclado en una fecha
// de referencia.
//
// Los totales cubren toda la ventana mensual consultada; el streak solo
// considera fechas <= la fecha de referencia. Son dos rangos distintos a
// propósito.
type Summary struct {
	// Streak cuenta días consecutivos 100% tomados caminando hacia atrás
	// desde la fecha de referencia sobre los días que tienen entradas.
	// Un día sin entradas no corta el streak: simplemente no participa.
	Streak int

	TotalTaken  int
	TotalMissed int
	TotalMeds   int

	// AdherenceRate formateado con dos decimales, p.ej. "66.67%".
	// "0.00%" cuando no hay entradas en la ventana.
	AdherenceRate string

	// Days agrupa las entradas por fecha, en orden de inserción.
	Days map[string][]medications.Entry
}
