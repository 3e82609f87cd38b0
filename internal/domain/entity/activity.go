package entity

import "time"

// Entidades sobre las que se registra actividad.
const (
	ActivityEntityMaterial = "material"
	ActivityEntityFormula  = "formula"
	ActivityEntityOrder    = "order"
	ActivityEntityUser     = "user"
)

// ActivityLogCap máximo de entradas retenidas; las más antiguas se descartan
// en cada append. El repositorio garantiza el tope, no el caller.
const ActivityLogCap = 100

// ActivityEntry entrada del registro de auditoría (append-only, más reciente
// primero). UserName es un snapshot denormalizado al momento de escribir.
type ActivityEntry struct {
	ID        string
	UserID    string
	UserName  string
	Action    string // etiqueta libre ("Création", "Modification", ...)
	Entity    string // ver constantes ActivityEntity*
	EntityID  string
	Details   string // texto legible para humanos
	Timestamp time.Time
}
