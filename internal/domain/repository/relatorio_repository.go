package repository

import "github.com/merendatech/merenda-api/internal/domain/entity"

// RelatorioRepository define o porto de persistência das solicitações de
// relatório processadas pela fila de workers.
type RelatorioRepository interface {
	Create(r *entity.Relatorio) error
	GetByID(id string) (*entity.Relatorio, error)
	// UpdateStatus grava a transição de status; filePath e errorMessage são
	// gravados quando não vazios.
	UpdateStatus(id, status, filePath, errorMessage string) error
	ListByEscola(escolaID string, limit, offset int) ([]*entity.Relatorio, error)
	// Delete remove a solicitação; usado quando o enfileiramento falha e o
	// registro pendente não deve sobreviver.
	Delete(id string) error
}
