// seed crea los usuarios iniciales del sistema (un SUPER_ADMIN, un MANAGER y
// un QA_AUDITOR) si no existen todavía.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/provision-audit-api/internal/domain/entity"
	"github.com/jhoicas/provision-audit-api/internal/infrastructure/postgres"
	"github.com/jhoicas/provision-audit-api/pkg/config"
)

type seedUser struct {
	username  string
	email     string
	firstName string
	lastName  string
	password  string
	role      string
}

var seedUsers = []seedUser{
	{"admin", "admin@provision-audit.local", "System", "Administrator", "ChangeMe123!", entity.RoleSuperAdmin},
	{"manager", "manager@provision-audit.local", "Operations", "Manager", "ChangeMe123!", entity.RoleManager},
	{"auditor", "auditor@provision-audit.local", "QA", "Auditor", "ChangeMe123!", entity.RoleQAAuditor},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	for _, s := range seedUsers {
		existing, err := userRepo.GetByUsername(s.username)
		if err != nil {
			fmt.Fprintf(os.Stderr, "consultar %s: %v\n", s.username, err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Printf("usuario %s ya existe, se omite\n", s.username)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hashear password de %s: %v\n", s.username, err)
			os.Exit(1)
		}
		now := time.Now()
		user := &entity.User{
			ID:           uuid.New().String(),
			Username:     s.username,
			Email:        s.email,
			FirstName:    s.firstName,
			LastName:     s.lastName,
			PasswordHash: string(hash),
			Role:         s.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(user); err != nil {
			fmt.Fprintf(os.Stderr, "crear %s: %v\n", s.username, err)
			os.Exit(1)
		}
		fmt.Printf("usuario %s (%s) creado\n", s.username, s.role)
	}
}
