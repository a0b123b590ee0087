package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/domain/entity"
)

// EstoqueItemRepository define o porto de persistência de itens de estoque.
// Usado dentro de transações para garantir consistência do livro.
type EstoqueItemRepository interface {
	Create(item *entity.EstoqueItem) error
	GetByID(id string) (*entity.EstoqueItem, error)
	// GetForUpdate obtém o item bloqueando a fila (SELECT FOR UPDATE);
	// serializa movimentos concorrentes sobre o mesmo item.
	GetForUpdate(id string) (*entity.EstoqueItem, error)
	// UpdateQuantity grava a nova quantidade em mãos e o último valor
	// unitário efetivo; lastRestock não nulo também atualiza a data da
	// última reposição (movimentos de entrada).
	UpdateQuantity(id string, quantity, unitValue decimal.Decimal, lastRestock *time.Time) error
	Update(item *entity.EstoqueItem) error
	Delete(id string) error
	ListByEscola(escolaID string, limit, offset int) ([]*entity.EstoqueItem, error)
	ListBelowMinimum(escolaID string) ([]*entity.EstoqueItem, error)
	ListExpiringBefore(escolaID string, date time.Time) ([]*entity.EstoqueItem, error)
	// FindByEscolaAndAlimento localiza os itens (lotes) de um alimento na
	// escola, ordenados por validade (FEFO), para a baixa de consumo.
	FindByEscolaAndAlimento(escolaID, alimentoID string) ([]*entity.EstoqueItem, error)
	TotalValueByEscola(escolaID string) (decimal.Decimal, error)
}

// MovimentoEstoqueRepository define o porto do livro de movimentos
// (append-only: sem update nem delete).
type MovimentoEstoqueRepository interface {
	Create(mov *entity.MovimentoEstoque) error
	GetByID(id string) (*entity.MovimentoEstoque, error)
	// ListByItem devolve o histórico do item em ordem cronológica.
	ListByItem(estoqueItemID string, limit, offset int) ([]*entity.MovimentoEstoque, error)
}
