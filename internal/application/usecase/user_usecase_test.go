package usecase_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/application/usecase"
	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/infrastructure/memory"
)

func newUserUC(t *testing.T) (*usecase.UserUseCase, *usecase.ActivityUseCase) {
	t.Helper()
	store := memory.NewStore()
	activityUC := usecase.NewActivityUseCase(store.Activity(), zerolog.Nop())
	return usecase.NewUserUseCase(store.Users(), activityUC), activityUC
}

func TestUserCreate_RolPorDefectoYDuplicado(t *testing.T) {
	uc, _ := newUserUC(t)

	out, err := uc.Create(testActor, dto.CreateUserRequest{
		Email:    "jean@aromalab.local",
		Password: "secret123",
		Name:     "Jean",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role, "rol vacío cae a user")

	_, err = uc.Create(testActor, dto.CreateUserRequest{
		Email:    "jean@aromalab.local",
		Password: "autre",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserCreate_RolInvalido(t *testing.T) {
	uc, _ := newUserUC(t)
	_, err := uc.Create(testActor, dto.CreateUserRequest{
		Email:    "x@aromalab.local",
		Password: "secret123",
		Role:     "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un cambio de rol queda registrado con la etiqueta dedicada.
func TestUserUpdate_CambioDeRolRegistraActividad(t *testing.T) {
	uc, activityUC := newUserUC(t)
	created, err := uc.Create(testActor, dto.CreateUserRequest{
		Email:    "jean@aromalab.local",
		Password: "secret123",
	})
	require.NoError(t, err)

	admin := entity.RoleAdmin
	out, err := uc.Update(testActor, created.ID, dto.UpdateUserRequest{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)

	log, err := activityUC.List()
	require.NoError(t, err)
	require.NotEmpty(t, log.Items)
	assert.Contains(t, log.Items[0].Details, "Rôle de jean@aromalab.local changé en admin")
}

// Un admin no puede borrarse a sí mismo.
func TestUserDelete_AutoBorradoRechazado(t *testing.T) {
	uc, _ := newUserUC(t)
	created, err := uc.Create(testActor, dto.CreateUserRequest{
		Email:    "admin2@aromalab.local",
		Password: "secret123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)

	self := dto.Actor{ID: created.ID, Name: created.Name}
	assert.ErrorIs(t, uc.Delete(self, created.ID), domain.ErrConflict)

	// otro admin sí puede borrarlo
	require.NoError(t, uc.Delete(testActor, created.ID))
}
