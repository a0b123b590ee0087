package dto

import "github.com/shopspring/decimal"

// AlimentoRequest body para criar/atualizar alimento.
type AlimentoRequest struct {
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	Group       string          `json:"group"`
	PerCapita   decimal.Decimal `json:"per_capita"`
}
