package estoque

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// ItensUseCase CRUD de itens de estoque e consulta do histórico de
// movimentos. A quantidade em mãos não é editável por aqui: só muda pelo
// MovimentoUseCase.
type ItensUseCase struct {
	itemRepo     repository.EstoqueItemRepository
	movRepo      repository.MovimentoEstoqueRepository
	alimentoRepo repository.AlimentoRepository
}

// NewItensUseCase constrói o caso de uso.
func NewItensUseCase(
	itemRepo repository.EstoqueItemRepository,
	movRepo repository.MovimentoEstoqueRepository,
	alimentoRepo repository.AlimentoRepository,
) *ItensUseCase {
	return &ItensUseCase{itemRepo: itemRepo, movRepo: movRepo, alimentoRepo: alimentoRepo}
}

// Create cria um item de estoque (alimento + lote) com quantidade zero.
// O saldo inicial entra depois como movimento de entrada, mantendo o
// invariante do livro.
func (uc *ItensUseCase) Create(escolaID string, in dto.EstoqueItemRequest) (*entity.EstoqueItem, error) {
	if escolaID == "" || in.AlimentoID == "" || in.Lot == "" || in.ExpirationDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityMinimum.LessThan(decimal.Zero) || in.UnitValue.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	alimento, err := uc.alimentoRepo.GetByID(in.AlimentoID)
	if err != nil {
		return nil, err
	}
	if alimento == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	item := &entity.EstoqueItem{
		ID:              uuid.New().String(),
		EscolaID:        escolaID,
		AlimentoID:      in.AlimentoID,
		QuantityOnHand:  decimal.Zero,
		QuantityMinimum: in.QuantityMinimum,
		UnitValue:       in.UnitValue,
		ExpirationDate:  in.ExpirationDate,
		Lot:             in.Lot,
		Supplier:        in.Supplier,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID devolve o item, checando o escopo da escola.
func (uc *ItensUseCase) GetByID(escolaID, id string) (*entity.EstoqueItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if escolaID != "" && item.EscolaID != escolaID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

// List lista os itens da escola.
func (uc *ItensUseCase) List(escolaID string, page dto.PageRequest) ([]*entity.EstoqueItem, error) {
	page.DefaultPage()
	return uc.itemRepo.ListByEscola(escolaID, page.Limit, page.Offset)
}

// Update atualiza os metadados do item (mínimo, validade, lote, fornecedor).
func (uc *ItensUseCase) Update(escolaID, id string, in dto.EstoqueItemRequest) (*entity.EstoqueItem, error) {
	item, err := uc.GetByID(escolaID, id)
	if err != nil {
		return nil, err
	}
	if in.QuantityMinimum.LessThan(decimal.Zero) || in.UnitValue.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item.QuantityMinimum = in.QuantityMinimum
	item.UnitValue = in.UnitValue
	if !in.ExpirationDate.IsZero() {
		item.ExpirationDate = in.ExpirationDate
	}
	if in.Lot != "" {
		item.Lot = in.Lot
	}
	item.Supplier = in.Supplier
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete remove um item de estoque zerado; item com saldo exige ajuste
// prévio para manter o livro consistente.
func (uc *ItensUseCase) Delete(escolaID, id string) error {
	item, err := uc.GetByID(escolaID, id)
	if err != nil {
		return err
	}
	if !item.QuantityOnHand.IsZero() {
		return domain.ErrConflict
	}
	return uc.itemRepo.Delete(id)
}

// ListMovements devolve o histórico de movimentos do item em ordem
// cronológica.
func (uc *ItensUseCase) ListMovements(escolaID, id string, page dto.PageRequest) ([]*entity.MovimentoEstoque, error) {
	if _, err := uc.GetByID(escolaID, id); err != nil {
		return nil, err
	}
	page.DefaultPage()
	return uc.movRepo.ListByItem(id, page.Limit, page.Offset)
}
