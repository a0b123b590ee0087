package repository

import "github.com/merendatech/merenda-api/internal/domain/entity"

// EscolaRepository define o porto de persistência de Escola (tenant).
type EscolaRepository interface {
	Create(escola *entity.Escola) error
	GetByID(id string) (*entity.Escola, error)
	List(limit, offset int) ([]*entity.Escola, error)
	Update(escola *entity.Escola) error
	// Deactivate desativa a escola (exclusão é sempre lógica).
	Deactivate(id string) error
}
