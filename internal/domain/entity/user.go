package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleManager    = "MANAGER"
	RoleQAAuditor  = "QA_AUDITOR"
)

// User representa un usuario del sistema: super administrador, gerente o
// auditor de calidad. Solo los QA_AUDITOR pueden ser asignados a una Provision.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // SUPER_ADMIN, MANAGER, QA_AUDITOR
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAuditor indica si el usuario puede recibir asignaciones de auditoría.
func (u *User) IsAuditor() bool {
	return u.Role == RoleQAAuditor
}
