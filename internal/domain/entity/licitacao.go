package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Situações de um processo licitatório (campo único de status).
const (
	LicitacaoAberta     = "aberta"
	LicitacaoHomologada = "homologada"
	LicitacaoEncerrada  = "encerrada"
	LicitacaoCancelada  = "cancelada"
)

// Licitacao representa um processo de compra (licitação ou chamada pública).
// FamilyFarming indica chamada pública de agricultura familiar, que compõe o
// percentual de conformidade do PNAE.
type Licitacao struct {
	ID            string
	EscolaID      string
	Number        string // número do processo, ex. 012/2026
	Modality      string // pregão, dispensa, chamada pública
	Object        string
	Status        string // aberta, homologada, encerrada, cancelada
	FamilyFarming bool
	Year          int
	TotalValue    decimal.Decimal // soma dos itens homologados
	OpeningDate   time.Time
	Items         []LicitacaoItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LicitacaoItem um item do processo com o fornecedor vencedor.
type LicitacaoItem struct {
	ID           string
	LicitacaoID  string
	AlimentoID   string
	FornecedorID string // vencedor; vazio enquanto aberta
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
}
