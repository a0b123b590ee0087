package entity

import "time"

// Tipos e situações de relatórios gerados em segundo plano.
const (
	RelatorioEstoquePosicao = "estoque-posicao"
	RelatorioConsumoResumo  = "consumo-resumo"

	RelatorioPendente    = "pendente"
	RelatorioProcessando = "processando"
	RelatorioConcluido   = "concluido"
	RelatorioErro        = "erro"
)

// Relatorio representa uma solicitação de relatório processada pela fila de
// workers. FilePath é preenchido quando concluído; ErrorMessage quando falha.
type Relatorio struct {
	ID           string
	EscolaID     string
	Kind         string // estoque-posicao, consumo-resumo
	Status       string // pendente, processando, concluido, erro
	PeriodStart  time.Time
	PeriodEnd    time.Time
	FilePath     string
	ErrorMessage string
	RequestedBy  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
