package domain

import "errors"

// Erros de domínio (sem dependências externas). Os handlers HTTP mapeiam
// cada sentinela para o status correspondente.
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autenticado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito de atualização concorrente, tente novamente")
	ErrInsufficientStock  = errors.New("estoque insuficiente")
)
