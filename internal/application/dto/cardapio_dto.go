package dto

import "github.com/shopspring/decimal"

// CardapioItemRequest um item do cardápio (alimento + per capita).
type CardapioItemRequest struct {
	AlimentoID string          `json:"alimento_id"`
	PerCapita  decimal.Decimal `json:"per_capita"`
}

// CardapioRequest body para criar/atualizar cardápio.
type CardapioRequest struct {
	Name     string                `json:"name"`
	WeekDay  int                   `json:"week_day"`
	MealType string                `json:"meal_type"`
	Notes    string                `json:"notes,omitempty"`
	Items    []CardapioItemRequest `json:"items"`
}
