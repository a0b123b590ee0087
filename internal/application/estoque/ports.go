package estoque

import (
	"context"

	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de DB, passando
// repositórios atados a essa tx. Garante o tudo-ou-nada do livro de
// movimentos: a linha do movimento e a quantidade do item são gravadas como
// uma única unidade atômica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.EstoqueItemRepository,
		movRepo repository.MovimentoEstoqueRepository,
	) error) error
}
