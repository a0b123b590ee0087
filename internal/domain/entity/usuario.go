package entity

import "time"

// Usuario representa um usuário do sistema. EscolaID vazio apenas para
// papéis globais (super_admin).
type Usuario struct {
	ID           string
	EscolaID     string
	Email        string
	PasswordHash string // hash bcrypt, nunca plano no domínio após persistir
	Name         string
	Role         string // super_admin, admin, nutricionista, estoquista, servidor
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
