package relatorio

import (
	"time"

	"github.com/google/uuid"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// Renderer gera o arquivo de um relatório e devolve o caminho do PDF.
// Implementado pela infraestrutura (maroto).
type Renderer interface {
	Render(r *entity.Relatorio) (filePath string, err error)
}

// RelatorioUseCase registra solicitações de relatório e as entrega à fila
// de workers. A solicitação persiste como pendente antes do enfileiramento:
// sem timers soltos, o status sempre reflete o estado real.
type RelatorioUseCase struct {
	repo   repository.RelatorioRepository
	worker *Worker
}

// NewRelatorioUseCase constrói o caso de uso.
func NewRelatorioUseCase(repo repository.RelatorioRepository, worker *Worker) *RelatorioUseCase {
	return &RelatorioUseCase{repo: repo, worker: worker}
}

func validKind(kind string) bool {
	switch kind {
	case entity.RelatorioEstoquePosicao, entity.RelatorioConsumoResumo:
		return true
	}
	return false
}

// Request persiste a solicitação como pendente e a enfileira. Fila cheia
// devolve ErrConflict (o caller pode tentar de novo).
func (uc *RelatorioUseCase) Request(escolaID, requestedBy string, in dto.RelatorioRequest) (*entity.Relatorio, error) {
	if escolaID == "" || !validKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if in.PeriodStart.IsZero() || in.PeriodEnd.IsZero() || in.PeriodEnd.Before(in.PeriodStart) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	r := &entity.Relatorio{
		ID:          uuid.New().String(),
		EscolaID:    escolaID,
		Kind:        in.Kind,
		Status:      entity.RelatorioPendente,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		RequestedBy: requestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(r); err != nil {
		return nil, err
	}
	if err := uc.worker.Enqueue(r.ID); err != nil {
		// Fila cheia é transitório: o registro pendente não deve sobreviver
		// como erro permanente. Remove e deixa o caller resolicitar.
		_ = uc.repo.Delete(r.ID)
		return nil, domain.ErrConflict
	}
	return r, nil
}

// GetByID devolve o estado da solicitação, checando o escopo da escola.
func (uc *RelatorioUseCase) GetByID(escolaID, id string) (*entity.Relatorio, error) {
	r, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if escolaID != "" && r.EscolaID != escolaID {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

// List lista as solicitações da escola.
func (uc *RelatorioUseCase) List(escolaID string, page dto.PageRequest) ([]*entity.Relatorio, error) {
	page.DefaultPage()
	return uc.repo.ListByEscola(escolaID, page.Limit, page.Offset)
}
