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

// CardapioUseCase CRUD de cardápios com itens de per capita.
type CardapioUseCase struct {
	repo         repository.CardapioRepository
	alimentoRepo repository.AlimentoRepository
}

// NewCardapioUseCase constrói o caso de uso.
func NewCardapioUseCase(repo repository.CardapioRepository, alimentoRepo repository.AlimentoRepository) *CardapioUseCase {
	return &CardapioUseCase{repo: repo, alimentoRepo: alimentoRepo}
}

func validMealType(t string) bool {
	switch t {
	case entity.MealTypeDesjejum, entity.MealTypeAlmoco, entity.MealTypeLanche, entity.MealTypeJantar:
		return true
	}
	return false
}

func (uc *CardapioUseCase) buildItems(cardapioID string, items []dto.CardapioItemRequest) ([]entity.CardapioItem, error) {
	out := make([]entity.CardapioItem, 0, len(items))
	for _, it := range items {
		if it.AlimentoID == "" || !it.PerCapita.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		alimento, err := uc.alimentoRepo.GetByID(it.AlimentoID)
		if err != nil {
			return nil, err
		}
		if alimento == nil {
			return nil, domain.ErrNotFound
		}
		out = append(out, entity.CardapioItem{
			ID:         uuid.New().String(),
			CardapioID: cardapioID,
			AlimentoID: it.AlimentoID,
			PerCapita:  it.PerCapita,
		})
	}
	return out, nil
}

// Create cria um cardápio com os itens, validando cada alimento.
func (uc *CardapioUseCase) Create(escolaID string, in dto.CardapioRequest) (*entity.Cardapio, error) {
	if escolaID == "" || in.Name == "" || !validMealType(in.MealType) {
		return nil, domain.ErrInvalidInput
	}
	if in.WeekDay < 0 || in.WeekDay > 6 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cardapio := &entity.Cardapio{
		ID:        uuid.New().String(),
		EscolaID:  escolaID,
		Name:      in.Name,
		WeekDay:   in.WeekDay,
		MealType:  in.MealType,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items, err := uc.buildItems(cardapio.ID, in.Items)
	if err != nil {
		return nil, err
	}
	cardapio.Items = items
	if err := uc.repo.Create(cardapio); err != nil {
		return nil, err
	}
	return cardapio, nil
}

// GetByID devolve o cardápio com itens, checando o escopo da escola.
func (uc *CardapioUseCase) GetByID(escolaID, id string) (*entity.Cardapio, error) {
	cardapio, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cardapio == nil {
		return nil, domain.ErrNotFound
	}
	if escolaID != "" && cardapio.EscolaID != escolaID {
		return nil, domain.ErrForbidden
	}
	return cardapio, nil
}

// List lista os cardápios da escola.
func (uc *CardapioUseCase) List(escolaID string, page dto.PageRequest) ([]*entity.Cardapio, error) {
	page.DefaultPage()
	return uc.repo.ListByEscola(escolaID, page.Limit, page.Offset)
}

// Update substitui dados e itens do cardápio.
func (uc *CardapioUseCase) Update(escolaID, id string, in dto.CardapioRequest) (*entity.Cardapio, error) {
	cardapio, err := uc.GetByID(escolaID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || !validMealType(in.MealType) || in.WeekDay < 0 || in.WeekDay > 6 {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.buildItems(cardapio.ID, in.Items)
	if err != nil {
		return nil, err
	}
	cardapio.Name = in.Name
	cardapio.WeekDay = in.WeekDay
	cardapio.MealType = in.MealType
	cardapio.Notes = in.Notes
	cardapio.Items = items
	cardapio.UpdatedAt = time.Now()
	if err := uc.repo.Update(cardapio); err != nil {
		return nil, err
	}
	return cardapio, nil
}

// Delete remove o cardápio e seus itens.
func (uc *CardapioUseCase) Delete(escolaID, id string) error {
	if _, err := uc.GetByID(escolaID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
