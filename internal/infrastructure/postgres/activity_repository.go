package postgres

import (
	"context"
	"fmt"

	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación de ActivityRepository sobre PostgreSQL.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Append inserta la entrada y recorta el registro a las
// entity.ActivityLogCap más recientes en la misma sentencia lógica.
func (r *ActivityRepo) Append(entry *entity.ActivityEntry) error {
	ctx := context.Background()
	insert := `
		INSERT INTO activity_log (id, user_id, user_name, action, entity, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(ctx, insert,
		entry.ID, entry.UserID, entry.UserName, entry.Action,
		entry.Entity, entry.EntityID, entry.Details, entry.Timestamp,
	); err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	trim := `
		DELETE FROM activity_log
		WHERE id NOT IN (
			SELECT id FROM activity_log ORDER BY created_at DESC, id LIMIT $1
		)`
	if _, err := r.q.Exec(ctx, trim, entity.ActivityLogCap); err != nil {
		return fmt.Errorf("trim activity log: %w", err)
	}
	return nil
}

// List devuelve las entradas, más reciente primero.
func (r *ActivityRepo) List() ([]*entity.ActivityEntry, error) {
	query := `
		SELECT id, user_id, user_name, action, entity, entity_id, details, created_at
		FROM activity_log
		ORDER BY created_at DESC, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list activity log: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityEntry
	for rows.Next() {
		var e entity.ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserName, &e.Action, &e.Entity, &e.EntityID, &e.Details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
