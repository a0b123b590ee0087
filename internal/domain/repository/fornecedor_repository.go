package repository

import "github.com/merendatech/merenda-api/internal/domain/entity"

// FornecedorRepository define o porto de persistência de Fornecedor.
type FornecedorRepository interface {
	Create(f *entity.Fornecedor) error
	GetByID(id string) (*entity.Fornecedor, error)
	List(limit, offset int) ([]*entity.Fornecedor, error)
	Update(f *entity.Fornecedor) error
	Delete(id string) error
}
