package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepassePNAE representa um repasse de recursos federais do PNAE recebido
// por uma escola em um exercício.
type RepassePNAE struct {
	ID        string
	EscolaID  string
	Year      int
	Reference string // parcela/portaria do repasse
	Amount    decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
}

// ResumoPNAE é o resumo de conformidade de um exercício: percentual de
// compras da agricultura familiar frente ao mínimo legal de 30%.
type ResumoPNAE struct {
	EscolaID            string
	Year                int
	TotalRepasses       decimal.Decimal
	TotalCompras        decimal.Decimal
	ComprasAgriFamiliar decimal.Decimal
	PercentAgriFamiliar decimal.Decimal // sobre o total de repasses
	MinimumPercent      decimal.Decimal // 30
	Conforme            bool
}
