package dto

// EscolaRequest body para criar/atualizar escola.
type EscolaRequest struct {
	Name     string `json:"name"`
	INEPCode string `json:"inep_code"`
	City     string `json:"city"`
	State    string `json:"state"`
}
