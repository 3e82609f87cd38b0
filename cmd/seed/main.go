// seed crea el usuario administrador inicial y un pequeño inventario de
// ejemplo si la base está vacía. Idempotente: no toca datos existentes.
//
// Uso: go run ./cmd/seed
// Variables: las mismas de la API (DB_*, o DATABASE_URL). SEED_ADMIN_EMAIL y
// SEED_ADMIN_PASSWORD cambian las credenciales por defecto.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/aromalab/aromalab-api/internal/domain/codes"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/infrastructure/postgres"
	"github.com/aromalab/aromalab-api/pkg/config"
)

type sampleMaterial struct {
	designation string
	cas         string
	supplier    string
	stock       string
	price       string
}

var sampleMaterials = []sampleMaterial{
	{"Vanilline", "121-33-5", "Givaudan", "250", "45.5"},
	{"Éthyl Maltol", "4940-11-8", "Symrise", "180", "62.0"},
	{"Menthol", "2216-51-5", "Firmenich", "320", "38.75"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fatal("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)

	// Admin inicial
	email := envOr("SEED_ADMIN_EMAIL", "admin@aromalab.local")
	existing, err := userRepo.GetByEmail(email)
	if err != nil {
		fatal("consultar usuarios: %v", err)
	}
	if existing == nil {
		password := envOr("SEED_ADMIN_PASSWORD", "changeme")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fatal("hash de contraseña: %v", err)
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Email:        email,
			PasswordHash: string(hash),
			Name:         "Administrateur",
			Role:         entity.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			fatal("crear admin: %v", err)
		}
		fmt.Printf("admin creado: %s\n", email)
	} else {
		fmt.Printf("admin ya existe: %s\n", email)
	}

	// Inventario de ejemplo, solo si no hay ninguna materia prima
	existingCodes, err := materialRepo.ListCodes()
	if err != nil {
		fatal("consultar materias primas: %v", err)
	}
	if len(existingCodes) > 0 {
		fmt.Printf("inventario ya poblado (%d materias primas), nada que sembrar\n", len(existingCodes))
		return
	}

	for _, s := range sampleMaterials {
		now := time.Now()
		m := &entity.RawMaterial{
			ID:          uuid.New().String(),
			Code:        codes.Next(existingCodes),
			Designation: s.designation,
			CAS:         s.cas,
			Supplier:    s.supplier,
			Stock:       decimal.RequireFromString(s.stock),
			Price:       decimal.RequireFromString(s.price),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := materialRepo.Create(m); err != nil {
			fatal("crear materia prima %q: %v", s.designation, err)
		}
		existingCodes = append(existingCodes, m.Code)
		fmt.Printf("materia prima creada: %s %s\n", codes.FormatMaterialCode(m.Code), m.Designation)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
