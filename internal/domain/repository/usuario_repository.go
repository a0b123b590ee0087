package repository

import "github.com/merendatech/merenda-api/internal/domain/entity"

// UsuarioRepository define o porto de persistência de Usuario (DIP).
type UsuarioRepository interface {
	Create(user *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	FindByEmail(email string) (*entity.Usuario, error)
	GetByEmailAndEscola(email, escolaID string) (*entity.Usuario, error)
	Update(user *entity.Usuario) error
	ListByEscola(escolaID string, limit, offset int) ([]*entity.Usuario, error)
	Delete(id string) error
}
