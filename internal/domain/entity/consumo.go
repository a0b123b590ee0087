package entity

import "time"

// Consumo representa o registro diário de refeições servidas por uma escola
// a partir de um cardápio. Quando a baixa automática é solicitada, os per
// capita do cardápio × porções são debitados do estoque na mesma transação.
type Consumo struct {
	ID         string
	EscolaID   string
	CardapioID string
	Date       time.Time
	Servings   int // porções servidas
	Notes      string
	ActorID    string
	CreatedAt  time.Time
}
