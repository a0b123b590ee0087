package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstoqueItem representa um item de estoque de uma escola (alimento + lote).
// QuantityOnHand nunca fica negativa e só é mutada pelo atualizador do livro
// de movimentos, dentro de transação.
type EstoqueItem struct {
	ID              string
	EscolaID        string
	AlimentoID      string
	QuantityOnHand  decimal.Decimal
	QuantityMinimum decimal.Decimal
	UnitValue       decimal.Decimal // último valor unitário registrado
	ExpirationDate  time.Time
	Lot             string
	Supplier        string
	LastRestockDate *time.Time // atualizado apenas em movimentos de entrada
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
