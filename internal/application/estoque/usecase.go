package estoque

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	ledger "github.com/merendatech/merenda-api/internal/domain/estoque"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// MovimentoUseCase é o atualizador do livro de estoque: aplica entrada,
// saída ou ajuste sobre um item de forma transacional, com bloqueio de fila
// (SELECT FOR UPDATE) para serializar movimentos concorrentes sobre o mesmo
// item.
type MovimentoUseCase struct {
	txRunner TxRunner
}

// NewMovimentoUseCase constrói o caso de uso.
func NewMovimentoUseCase(txRunner TxRunner) *MovimentoUseCase {
	return &MovimentoUseCase{txRunner: txRunner}
}

// MovimentoInput entrada para aplicar um movimento no livro.
// EscolaID vazio indica principal global (sem checagem de tenant).
// UnitValue nulo usa o último valor unitário registrado do item.
type MovimentoInput struct {
	EscolaID          string
	ActorID           string
	EstoqueItemID     string
	Kind              string
	Quantity          decimal.Decimal
	UnitValue         *decimal.Decimal
	Reason            string
	ReferenceDocument string
}

// MovimentoResult movimento criado e quantidade resultante.
type MovimentoResult struct {
	Movement    *entity.MovimentoEstoque
	NewQuantity decimal.Decimal
}

// ApplyMovement valida a entrada, abre a transação, bloqueia a fila do item,
// calcula a nova quantidade e grava movimento + quantidade como uma unidade
// atômica (Commit ou Rollback). Validação e saldo insuficiente falham antes
// de qualquer escrita.
func (uc *MovimentoUseCase) ApplyMovement(ctx context.Context, input MovimentoInput) (*MovimentoResult, error) {
	if input.EstoqueItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ledger.ValidateQuantity(input.Kind, input.Quantity); err != nil {
		return nil, err
	}
	if input.UnitValue != nil && input.UnitValue.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result *MovimentoResult
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.EstoqueItemRepository,
		movRepo repository.MovimentoEstoqueRepository,
	) error {
		r, err := uc.ApplyMovementInTx(itemRepo, movRepo, input, time.Now())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyMovementInTx aplica o movimento usando repositórios já atados à
// transação do caller (usado pela baixa automática de consumo, que grava
// consumo + saídas na mesma transação).
func (uc *MovimentoUseCase) ApplyMovementInTx(
	itemRepo repository.EstoqueItemRepository,
	movRepo repository.MovimentoEstoqueRepository,
	input MovimentoInput,
	now time.Time,
) (*MovimentoResult, error) {
	// Bloqueia a fila do item; movimentos concorrentes sobre o mesmo item
	// serializam aqui.
	item, err := itemRepo.GetForUpdate(input.EstoqueItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if input.EscolaID != "" && item.EscolaID != input.EscolaID {
		return nil, domain.ErrForbidden
	}

	unitValue := item.UnitValue
	if input.UnitValue != nil {
		unitValue = *input.UnitValue
	}

	newQty, err := ledger.NewQuantity(input.Kind, item.QuantityOnHand, input.Quantity)
	if err != nil {
		return nil, err
	}

	var lastRestock *time.Time
	if input.Kind == ledger.MovementEntrada {
		lastRestock = &now
	}
	if err := itemRepo.UpdateQuantity(item.ID, newQty, unitValue, lastRestock); err != nil {
		return nil, err
	}

	mov := &entity.MovimentoEstoque{
		ID:                uuid.New().String(),
		EstoqueItemID:     item.ID,
		Kind:              input.Kind,
		Quantity:          input.Quantity,
		UnitValue:         unitValue,
		TotalValue:        ledger.TotalValue(input.Quantity, unitValue),
		Reason:            input.Reason,
		ReferenceDocument: input.ReferenceDocument,
		ActorID:           input.ActorID,
		CreatedAt:         now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	return &MovimentoResult{Movement: mov, NewQuantity: newQty}, nil
}
