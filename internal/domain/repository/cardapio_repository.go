package repository

import "github.com/merendatech/merenda-api/internal/domain/entity"

// CardapioRepository define o porto de persistência de Cardapio e seus itens.
type CardapioRepository interface {
	Create(cardapio *entity.Cardapio) error
	GetByID(id string) (*entity.Cardapio, error)
	ListByEscola(escolaID string, limit, offset int) ([]*entity.Cardapio, error)
	// Update substitui os dados do cardápio e o conjunto de itens.
	Update(cardapio *entity.Cardapio) error
	Delete(id string) error
}
