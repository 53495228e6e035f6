package repository

import "github.com/jhoicas/provision-audit-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	ListByRole(role string, onlyActive bool) ([]*entity.User, error)
}
