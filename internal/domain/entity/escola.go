package entity

import "time"

// Escola representa a unidade organizacional (tenant). Todos os dados de
// cardápios, estoque e consumo são escopados pelo ID da escola; principal
// sem escola (super_admin) tem escopo global.
type Escola struct {
	ID        string
	Name      string
	INEPCode  string // código INEP da unidade escolar
	City      string
	State     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
