package dto

// FornecedorRequest body para criar/atualizar fornecedor.
type FornecedorRequest struct {
	Name          string `json:"name"`
	CNPJ          string `json:"cnpj"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	FamilyFarming bool   `json:"family_farming"`
}
