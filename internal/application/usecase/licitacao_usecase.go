package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// LicitacaoUseCase CRUD de processos de compra com transição de status por
// campo único (aberta → homologada → encerrada / cancelada).
type LicitacaoUseCase struct {
	repo           repository.LicitacaoRepository
	alimentoRepo   repository.AlimentoRepository
	fornecedorRepo repository.FornecedorRepository
}

// NewLicitacaoUseCase constrói o caso de uso.
func NewLicitacaoUseCase(
	repo repository.LicitacaoRepository,
	alimentoRepo repository.AlimentoRepository,
	fornecedorRepo repository.FornecedorRepository,
) *LicitacaoUseCase {
	return &LicitacaoUseCase{repo: repo, alimentoRepo: alimentoRepo, fornecedorRepo: fornecedorRepo}
}

func validStatus(s string) bool {
	switch s {
	case entity.LicitacaoAberta, entity.LicitacaoHomologada, entity.LicitacaoEncerrada, entity.LicitacaoCancelada:
		return true
	}
	return false
}

// allowedTransitions transições válidas do campo de status.
var allowedTransitions = map[string][]string{
	entity.LicitacaoAberta:     {entity.LicitacaoHomologada, entity.LicitacaoCancelada},
	entity.LicitacaoHomologada: {entity.LicitacaoEncerrada, entity.LicitacaoCancelada},
}

func canTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (uc *LicitacaoUseCase) buildItems(licitacaoID string, items []dto.LicitacaoItemRequest) ([]entity.LicitacaoItem, decimal.Decimal, error) {
	total := decimal.Zero
	out := make([]entity.LicitacaoItem, 0, len(items))
	for _, it := range items {
		if it.AlimentoID == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitPrice.LessThan(decimal.Zero) {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		alimento, err := uc.alimentoRepo.GetByID(it.AlimentoID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if alimento == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		if it.FornecedorID != "" {
			f, err := uc.fornecedorRepo.GetByID(it.FornecedorID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			if f == nil {
				return nil, decimal.Zero, domain.ErrNotFound
			}
		}
		totalPrice := it.Quantity.Mul(it.UnitPrice).Round(2)
		out = append(out, entity.LicitacaoItem{
			ID:           uuid.New().String(),
			LicitacaoID:  licitacaoID,
			AlimentoID:   it.AlimentoID,
			FornecedorID: it.FornecedorID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalPrice:   totalPrice,
		})
		total = total.Add(totalPrice)
	}
	return out, total, nil
}

// Create registra um processo na situação aberta.
func (uc *LicitacaoUseCase) Create(escolaID string, in dto.LicitacaoRequest) (*entity.Licitacao, error) {
	if escolaID == "" || in.Number == "" || in.Year == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	l := &entity.Licitacao{
		ID:            uuid.New().String(),
		EscolaID:      escolaID,
		Number:        in.Number,
		Modality:      in.Modality,
		Object:        in.Object,
		Status:        entity.LicitacaoAberta,
		FamilyFarming: in.FamilyFarming,
		Year:          in.Year,
		OpeningDate:   in.OpeningDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items, total, err := uc.buildItems(l.ID, in.Items)
	if err != nil {
		return nil, err
	}
	l.Items = items
	l.TotalValue = total
	if err := uc.repo.Create(l); err != nil {
		return nil, err
	}
	return l, nil
}

// GetByID devolve o processo, checando o escopo da escola.
func (uc *LicitacaoUseCase) GetByID(escolaID, id string) (*entity.Licitacao, error) {
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if escolaID != "" && l.EscolaID != escolaID {
		return nil, domain.ErrForbidden
	}
	return l, nil
}

// List lista os processos da escola, opcionalmente por exercício.
func (uc *LicitacaoUseCase) List(escolaID string, year int, page dto.PageRequest) ([]*entity.Licitacao, error) {
	page.DefaultPage()
	return uc.repo.ListByEscola(escolaID, year, page.Limit, page.Offset)
}

// Update substitui dados e itens de um processo ainda aberto.
func (uc *LicitacaoUseCase) Update(escolaID, id string, in dto.LicitacaoRequest) (*entity.Licitacao, error) {
	l, err := uc.GetByID(escolaID, id)
	if err != nil {
		return nil, err
	}
	if l.Status != entity.LicitacaoAberta {
		return nil, domain.ErrConflict
	}
	if in.Number == "" || in.Year == 0 {
		return nil, domain.ErrInvalidInput
	}
	items, total, err := uc.buildItems(l.ID, in.Items)
	if err != nil {
		return nil, err
	}
	l.Number = in.Number
	l.Modality = in.Modality
	l.Object = in.Object
	l.FamilyFarming = in.FamilyFarming
	l.Year = in.Year
	l.OpeningDate = in.OpeningDate
	l.Items = items
	l.TotalValue = total
	l.UpdatedAt = time.Now()
	if err := uc.repo.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateStatus aplica uma transição válida de status.
func (uc *LicitacaoUseCase) UpdateStatus(escolaID, id, status string) (*entity.Licitacao, error) {
	if !validStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	l, err := uc.GetByID(escolaID, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(l.Status, status) {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	l.Status = status
	return l, nil
}

// Delete remove um processo ainda aberto.
func (uc *LicitacaoUseCase) Delete(escolaID, id string) error {
	l, err := uc.GetByID(escolaID, id)
	if err != nil {
		return err
	}
	if l.Status != entity.LicitacaoAberta {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
