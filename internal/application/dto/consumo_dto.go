package dto

import "time"

// ConsumoRequest body para registrar refeições servidas.
// DebitarEstoque aciona a baixa automática dos per capita do cardápio.
type ConsumoRequest struct {
	CardapioID     string    `json:"cardapio_id"`
	Date           time.Time `json:"date"`
	Servings       int       `json:"servings"`
	Notes          string    `json:"notes,omitempty"`
	DebitarEstoque bool      `json:"debitar_estoque"`
}
