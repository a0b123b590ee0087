package consumo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/application/dto"
	appestoque "github.com/merendatech/merenda-api/internal/application/estoque"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	ledger "github.com/merendatech/merenda-api/internal/domain/estoque"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// ConsumoUseCase registra refeições servidas. Com baixa automática, os per
// capita do cardápio × porções são debitados do estoque por ordem de
// validade (FEFO) na mesma transação do registro: estoque insuficiente em
// qualquer ingrediente aborta o registro inteiro.
type ConsumoUseCase struct {
	txRunner     TxRunner
	cardapioRepo repository.CardapioRepository
	consumoRepo  repository.ConsumoRepository
	movimentoUC  *appestoque.MovimentoUseCase
}

// NewConsumoUseCase constrói o caso de uso.
func NewConsumoUseCase(
	txRunner TxRunner,
	cardapioRepo repository.CardapioRepository,
	consumoRepo repository.ConsumoRepository,
	movimentoUC *appestoque.MovimentoUseCase,
) *ConsumoUseCase {
	return &ConsumoUseCase{
		txRunner:     txRunner,
		cardapioRepo: cardapioRepo,
		consumoRepo:  consumoRepo,
		movimentoUC:  movimentoUC,
	}
}

// Register valida e grava o registro de consumo; com DebitarEstoque, as
// saídas correspondentes entram na mesma transação.
func (uc *ConsumoUseCase) Register(ctx context.Context, escolaID, actorID string, in dto.ConsumoRequest) (*entity.Consumo, error) {
	if escolaID == "" || in.CardapioID == "" || in.Servings <= 0 || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	cardapio, err := uc.cardapioRepo.GetByID(in.CardapioID)
	if err != nil {
		return nil, err
	}
	if cardapio == nil {
		return nil, domain.ErrNotFound
	}
	if cardapio.EscolaID != escolaID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	consumo := &entity.Consumo{
		ID:         uuid.New().String(),
		EscolaID:   escolaID,
		CardapioID: in.CardapioID,
		Date:       in.Date,
		Servings:   in.Servings,
		Notes:      in.Notes,
		ActorID:    actorID,
		CreatedAt:  now,
	}

	err = uc.txRunner.RunConsumo(ctx, func(
		consumoRepo repository.ConsumoRepository,
		itemRepo repository.EstoqueItemRepository,
		movRepo repository.MovimentoEstoqueRepository,
	) error {
		if err := consumoRepo.Create(consumo); err != nil {
			return err
		}
		if !in.DebitarEstoque {
			return nil
		}
		servings := decimal.NewFromInt(int64(in.Servings))
		for _, item := range cardapio.Items {
			needed := item.PerCapita.Mul(servings)
			if !needed.GreaterThan(decimal.Zero) {
				continue
			}
			if err := uc.debitAlimento(itemRepo, movRepo, escolaID, actorID, item.AlimentoID, consumo.ID, needed, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return consumo, nil
}

// debitAlimento percorre os lotes do alimento por validade (FEFO) debitando
// até cobrir a quantidade necessária; soma dos lotes insuficiente retorna
// ErrInsufficientStock, derrubando a transação inteira.
func (uc *ConsumoUseCase) debitAlimento(
	itemRepo repository.EstoqueItemRepository,
	movRepo repository.MovimentoEstoqueRepository,
	escolaID, actorID, alimentoID, consumoID string,
	needed decimal.Decimal,
	now time.Time,
) error {
	lotes, err := itemRepo.FindByEscolaAndAlimento(escolaID, alimentoID)
	if err != nil {
		return err
	}
	remaining := needed
	for _, lote := range lotes {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(remaining, lote.QuantityOnHand)
		if !take.GreaterThan(decimal.Zero) {
			continue
		}
		_, err := uc.movimentoUC.ApplyMovementInTx(itemRepo, movRepo, appestoque.MovimentoInput{
			EscolaID:          escolaID,
			ActorID:           actorID,
			EstoqueItemID:     lote.ID,
			Kind:              ledger.MovementSaida,
			Quantity:          take,
			Reason:            "baixa por consumo",
			ReferenceDocument: fmt.Sprintf("consumo:%s", consumoID),
		}, now)
		if err != nil {
			return err
		}
		remaining = remaining.Sub(take)
	}
	if remaining.GreaterThan(decimal.Zero) {
		return domain.ErrInsufficientStock
	}
	return nil
}

// List devolve os registros de consumo da escola no período.
func (uc *ConsumoUseCase) List(escolaID string, from, to *time.Time, page dto.PageRequest) ([]*entity.Consumo, error) {
	page.DefaultPage()
	return uc.consumoRepo.ListByEscola(escolaID, from, to, page.Limit, page.Offset)
}
