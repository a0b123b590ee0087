package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepasseRequest body para registrar um repasse federal do PNAE.
type RepasseRequest struct {
	Year      int             `json:"year"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// ResumoPNAEResponse resumo de conformidade do exercício.
type ResumoPNAEResponse struct {
	EscolaID            string          `json:"escola_id"`
	Year                int             `json:"year"`
	TotalRepasses       decimal.Decimal `json:"total_repasses"`
	TotalCompras        decimal.Decimal `json:"total_compras"`
	ComprasAgriFamiliar decimal.Decimal `json:"compras_agricultura_familiar"`
	PercentAgriFamiliar decimal.Decimal `json:"percentual_agricultura_familiar"`
	MinimumPercent      decimal.Decimal `json:"percentual_minimo"`
	Conforme            bool            `json:"conforme"`
}
