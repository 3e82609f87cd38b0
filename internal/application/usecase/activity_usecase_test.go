package usecase_test

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromalab/aromalab-api/internal/application/usecase"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/infrastructure/memory"
)

// El registro retiene como máximo 100 entradas: al pasar el tope se descartan
// las más antiguas y List devuelve más reciente primero.
func TestActivityRecord_TopeDeCienEntradas(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewActivityUseCase(store.Activity(), zerolog.Nop())

	for i := 1; i <= 105; i++ {
		uc.Record(testActor, "Création", entity.ActivityEntityMaterial,
			fmt.Sprintf("id-%d", i), fmt.Sprintf("entrée %d", i))
	}

	out, err := uc.List()
	require.NoError(t, err)
	require.Equal(t, entity.ActivityLogCap, out.Total)

	// más reciente primero: la 105 encabeza, la 6 cierra; 1..5 descartadas
	assert.Equal(t, "entrée 105", out.Items[0].Details)
	assert.Equal(t, "entrée 6", out.Items[len(out.Items)-1].Details)
}

// Las entradas llevan el snapshot del actor.
func TestActivityRecord_EstampaActor(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewActivityUseCase(store.Activity(), zerolog.Nop())

	uc.Record(testActor, "Suppression", entity.ActivityEntityFormula, "f-1", "Formule F1 supprimée")

	out, err := uc.List()
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	e := out.Items[0]
	assert.Equal(t, testActor.ID, e.UserID)
	assert.Equal(t, testActor.Name, e.UserName)
	assert.Equal(t, "Suppression", e.Action)
	assert.Equal(t, entity.ActivityEntityFormula, e.Entity)
	assert.Equal(t, "f-1", e.EntityID)
	assert.False(t, e.Timestamp.IsZero())
}
