package repository

import (
	"time"

	"github.com/merendatech/merenda-api/internal/domain/entity"
)

// ConsumoRepository define o porto de persistência dos registros de consumo.
type ConsumoRepository interface {
	Create(c *entity.Consumo) error
	GetByID(id string) (*entity.Consumo, error)
	ListByEscola(escolaID string, from, to *time.Time, limit, offset int) ([]*entity.Consumo, error)
	ServingsInPeriod(escolaID string, from, to time.Time) (int, error)
}
