package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario de la aplicación. El password se guarda como
// hash bcrypt, nunca en claro.
type User struct {
	ID           string
	Email        string // clave única
	PasswordHash string
	Name         string
	Role         string // ver constantes Role*
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
