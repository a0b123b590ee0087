package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LicitacaoItemRequest item de um processo de compra.
type LicitacaoItemRequest struct {
	AlimentoID   string          `json:"alimento_id"`
	FornecedorID string          `json:"fornecedor_id,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// LicitacaoRequest body para criar/atualizar processo de compra.
type LicitacaoRequest struct {
	Number        string                 `json:"number"`
	Modality      string                 `json:"modality"`
	Object        string                 `json:"object"`
	FamilyFarming bool                   `json:"family_farming"`
	Year          int                    `json:"year"`
	OpeningDate   time.Time              `json:"opening_date"`
	Items         []LicitacaoItemRequest `json:"items"`
}

// LicitacaoStatusRequest body para PATCH de status.
type LicitacaoStatusRequest struct {
	Status string `json:"status"`
}
