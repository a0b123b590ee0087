package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de refeição de um cardápio.
const (
	MealTypeDesjejum = "desjejum"
	MealTypeAlmoco   = "almoco"
	MealTypeLanche   = "lanche"
	MealTypeJantar   = "jantar"
)

// Cardapio representa um cardápio planejado para uma escola, com os itens e
// per capita de cada alimento por porção servida.
type Cardapio struct {
	ID        string
	EscolaID  string
	Name      string
	WeekDay   int    // 0=domingo ... 6=sábado
	MealType  string // desjejum, almoco, lanche, jantar
	Notes     string
	Items     []CardapioItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CardapioItem um alimento do cardápio com o per capita por porção.
type CardapioItem struct {
	ID         string
	CardapioID string
	AlimentoID string
	PerCapita  decimal.Decimal // quantidade por porção, na unidade do alimento
}
