package entity

import "time"

// Fornecedor representa um fornecedor de gêneros alimentícios.
// FamilyFarming marca fornecedores da agricultura familiar (Lei 11.947:
// mínimo de 30% dos repasses do PNAE).
type Fornecedor struct {
	ID            string
	Name          string
	CNPJ          string
	Email         string
	Phone         string
	FamilyFarming bool
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
