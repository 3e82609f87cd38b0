package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aromalab/aromalab-api/internal/application/dto"
	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios (solo admin; el RBAC lo aplica el router).
type UserUseCase struct {
	repo     repository.UserRepository
	activity *ActivityUseCase
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, activity *ActivityUseCase) *UserUseCase {
	return &UserUseCase{repo: repo, activity: activity}
}

// Create crea un usuario con el rol indicado (vacío → "user"). Hashea el
// password con bcrypt; devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *UserUseCase) Create(actor dto.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleAdmin && role != entity.RoleUser {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	uc.activity.Record(actor, "Création", entity.ActivityEntityUser, user.ID,
		fmt.Sprintf("Utilisateur %s créé avec le rôle %s", user.Email, user.Role))
	return toUserResponse(user), nil
}

// Update aplica un merge-patch (nombre, rol, password). Devuelve nil sin
// error si el ID no existe.
func (uc *UserUseCase) Update(actor dto.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	roleChanged := false
	if in.Name != nil && *in.Name != "" {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if *in.Role != entity.RoleAdmin && *in.Role != entity.RoleUser {
			return nil, domain.ErrInvalidInput
		}
		roleChanged = user.Role != *in.Role
		user.Role = *in.Role
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	if roleChanged {
		uc.activity.Record(actor, "Modification", entity.ActivityEntityUser, user.ID,
			fmt.Sprintf("Rôle de %s changé en %s", user.Email, user.Role))
	} else {
		uc.activity.Record(actor, "Modification", entity.ActivityEntityUser, user.ID,
			fmt.Sprintf("Utilisateur %s modifié", user.Email))
	}
	return toUserResponse(user), nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List() (*dto.UserListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Total: len(items)}, nil
}

// Delete borra un usuario. Un admin no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(actor dto.Actor, id string) error {
	if actor.ID == id {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.activity.Record(actor, "Suppression", entity.ActivityEntityUser, id,
		fmt.Sprintf("Utilisateur %s supprimé", user.Email))
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
