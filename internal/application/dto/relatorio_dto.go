package dto

import "time"

// RelatorioRequest body para solicitar a geração de um relatório.
type RelatorioRequest struct {
	Kind        string    `json:"kind"` // estoque-posicao, consumo-resumo
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// RelatorioResponse estado de uma solicitação de relatório.
type RelatorioResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Status       string    `json:"status"`
	FilePath     string    `json:"file_path,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
