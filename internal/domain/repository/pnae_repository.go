package repository

import (
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/domain/entity"
)

// RepassePNAERepository define o porto de persistência dos repasses do PNAE.
type RepassePNAERepository interface {
	Create(r *entity.RepassePNAE) error
	ListByEscolaYear(escolaID string, year int) ([]*entity.RepassePNAE, error)
	TotalByYear(escolaID string, year int) (decimal.Decimal, error)
}
