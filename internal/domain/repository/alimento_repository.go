package repository

import "github.com/merendatech/merenda-api/internal/domain/entity"

// AlimentoRepository define o porto de persistência de Alimento.
// Search recebe o termo já normalizado (sem acentos, minúsculas).
type AlimentoRepository interface {
	Create(alimento *entity.Alimento) error
	GetByID(id string) (*entity.Alimento, error)
	List(search string, limit, offset int) ([]*entity.Alimento, error)
	Update(alimento *entity.Alimento) error
	Delete(id string) error
}
