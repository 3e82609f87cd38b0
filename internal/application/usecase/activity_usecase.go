package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

// ActivityUseCase registro de auditoría. Record es best-effort: un fallo al
// estampar actividad se loguea y nunca hace fallar la mutación que lo originó.
type ActivityUseCase struct {
	repo repository.ActivityRepository
	log  zerolog.Logger
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository, log zerolog.Logger) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, log: log}
}

// Record añade una entrada estampada con el actor. El repositorio garantiza
// el tope de 100 entradas.
func (uc *ActivityUseCase) Record(actor dto.Actor, action, entityKind, entityID, details string) {
	entry := &entity.ActivityEntry{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		Action:    action,
		Entity:    entityKind,
		EntityID:  entityID,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := uc.repo.Append(entry); err != nil {
		uc.log.Error().Err(err).
			Str("action", action).
			Str("entity", entityKind).
			Str("entity_id", entityID).
			Msg("registro de actividad falló")
	}
}

// List devuelve las entradas, más reciente primero (máx. 100).
func (uc *ActivityUseCase) List() (*dto.ActivityListResponse, error) {
	entries, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.ActivityResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			UserName:  e.UserName,
			Action:    e.Action,
			Entity:    e.Entity,
			EntityID:  e.EntityID,
			Details:   e.Details,
			Timestamp: e.Timestamp,
		})
	}
	return &dto.ActivityListResponse{Items: items, Total: len(items)}, nil
}
