package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alimento representa um gênero alimentício do catálogo (compartilhado entre
// escolas da mesma rede).
type Alimento struct {
	ID          string
	Name        string
	NameSearch  string          // nome normalizado sem acentos, para busca
	UnitMeasure string          // kg, l, un, pct
	Group       string          // grupo nutricional: cereais, proteínas, hortifrúti...
	PerCapita   decimal.Decimal // referência de per capita por porção, na unidade de medida
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
