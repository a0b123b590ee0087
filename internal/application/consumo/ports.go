package consumo

import (
	"context"

	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de DB com os
// repositórios de consumo e de estoque atados à mesma tx: o registro de
// consumo e as saídas de estoque são gravados como uma única unidade.
type TxRunner interface {
	RunConsumo(ctx context.Context, fn func(
		consumoRepo repository.ConsumoRepository,
		itemRepo repository.EstoqueItemRepository,
		movRepo repository.MovimentoEstoqueRepository,
	) error) error
}
