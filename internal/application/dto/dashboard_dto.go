package dto

import "github.com/shopspring/decimal"

// DashboardResponse agregados por escola exibidos no painel.
type DashboardResponse struct {
	ItensAbaixoMinimo   int             `json:"itens_abaixo_minimo"`
	ItensVencendo30Dias int             `json:"itens_vencendo_30_dias"`
	RefeicoesNoMes      int             `json:"refeicoes_no_mes"`
	ValorTotalEstoque   decimal.Decimal `json:"valor_total_estoque"`
}
