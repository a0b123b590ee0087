package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovimentoEstoque representa um movimento do livro de estoque (entrada,
// saída ou ajuste). Append-only: uma vez gravado, imutável.
// TotalValue = Quantity × UnitValue arredondado a 2 casas.
type MovimentoEstoque struct {
	ID                string
	EstoqueItemID     string
	Kind              string // entrada, saida, ajuste
	Quantity          decimal.Decimal
	UnitValue         decimal.Decimal
	TotalValue        decimal.Decimal
	Reason            string
	ReferenceDocument string // nota fiscal, requisição, termo de ajuste...
	ActorID           string // usuário que registrou
	CreatedAt         time.Time
}
