package repository

import "github.com/aromalab/aromalab-api/internal/domain/entity"

// ActivityRepository define el puerto del registro de auditoría.
// Append inserta y garantiza el tope de entity.ActivityLogCap entradas
// (las más antiguas se descartan). List devuelve más reciente primero.
type ActivityRepository interface {
	Append(entry *entity.ActivityEntry) error
	List() ([]*entity.ActivityEntry, error)
}
