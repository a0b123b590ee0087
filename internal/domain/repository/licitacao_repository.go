package repository

import (
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/domain/entity"
)

// LicitacaoRepository define o porto de persistência de processos de compra.
type LicitacaoRepository interface {
	Create(l *entity.Licitacao) error
	GetByID(id string) (*entity.Licitacao, error)
	ListByEscola(escolaID string, year int, limit, offset int) ([]*entity.Licitacao, error)
	Update(l *entity.Licitacao) error
	UpdateStatus(id, status string) error
	Delete(id string) error
	// TotalComprasByYear soma o valor homologado no exercício; familyOnly
	// restringe a chamadas públicas de agricultura familiar (PNAE).
	TotalComprasByYear(escolaID string, year int, familyOnly bool) (decimal.Decimal, error)
}
