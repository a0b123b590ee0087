package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstoqueItemRequest body para criar/atualizar item de estoque.
// A quantidade inicial entra como movimento de entrada, não por aqui.
type EstoqueItemRequest struct {
	AlimentoID      string          `json:"alimento_id"`
	QuantityMinimum decimal.Decimal `json:"quantity_minimum"`
	UnitValue       decimal.Decimal `json:"unit_value"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	Lot             string          `json:"lot"`
	Supplier        string          `json:"supplier,omitempty"`
}

// MovimentoRequest body para POST /api/estoque/itens/:id/movimentos.
// UnitValue omitido usa o último valor unitário registrado do item.
type MovimentoRequest struct {
	Kind              string           `json:"kind"` // entrada, saida, ajuste
	Quantity          decimal.Decimal  `json:"quantity"`
	UnitValue         *decimal.Decimal `json:"unit_value,omitempty"`
	Reason            string           `json:"reason,omitempty"`
	ReferenceDocument string           `json:"reference_document,omitempty"`
}

// MovimentoResponse movimento criado + quantidade resultante, para
// confirmação na interface.
type MovimentoResponse struct {
	Movement    MovimentoDTO    `json:"movement"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// MovimentoDTO representação de um movimento do livro.
type MovimentoDTO struct {
	ID                string          `json:"id"`
	EstoqueItemID     string          `json:"estoque_item_id"`
	Kind              string          `json:"kind"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitValue         decimal.Decimal `json:"unit_value"`
	TotalValue        decimal.Decimal `json:"total_value"`
	Reason            string          `json:"reason,omitempty"`
	ReferenceDocument string          `json:"reference_document,omitempty"`
	ActorID           string          `json:"actor_id"`
	CreatedAt         time.Time       `json:"created_at"`
}
