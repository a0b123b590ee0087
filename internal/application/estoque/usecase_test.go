package estoque_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appestoque "github.com/merendatech/merenda-api/internal/application/estoque"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	ledger "github.com/merendatech/merenda-api/internal/domain/estoque"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória. O fakeTxRunner serializa as transações com um mutex,
// modelando o bloqueio de fila (SELECT FOR UPDATE) do PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu    sync.Mutex
	items map[string]*entity.EstoqueItem
	movs  []*entity.MovimentoEstoque
}

func newFakeStore(items ...*entity.EstoqueItem) *fakeStore {
	s := &fakeStore{items: make(map[string]*entity.EstoqueItem)}
	for _, it := range items {
		cp := *it
		s.items[it.ID] = &cp
	}
	return s
}

type fakeItemRepo struct{ s *fakeStore }

func (r *fakeItemRepo) Create(item *entity.EstoqueItem) error {
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.EstoqueItem, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.EstoqueItem, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) UpdateQuantity(id string, quantity, unitValue decimal.Decimal, lastRestock *time.Time) error {
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.QuantityOnHand = quantity
	it.UnitValue = unitValue
	if lastRestock != nil {
		t := *lastRestock
		it.LastRestockDate = &t
	}
	return nil
}

func (r *fakeItemRepo) Update(item *entity.EstoqueItem) error {
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.s.items, id)
	return nil
}

func (r *fakeItemRepo) ListByEscola(string, int, int) ([]*entity.EstoqueItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) ListBelowMinimum(string) ([]*entity.EstoqueItem, error) { return nil, nil }
func (r *fakeItemRepo) ListExpiringBefore(string, time.Time) ([]*entity.EstoqueItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) FindByEscolaAndAlimento(string, string) ([]*entity.EstoqueItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) TotalValueByEscola(string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeMovRepo struct{ s *fakeStore }

func (r *fakeMovRepo) Create(mov *entity.MovimentoEstoque) error {
	cp := *mov
	r.s.movs = append(r.s.movs, &cp)
	return nil
}

func (r *fakeMovRepo) GetByID(id string) (*entity.MovimentoEstoque, error) {
	for _, m := range r.s.movs {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovRepo) ListByItem(itemID string, limit, offset int) ([]*entity.MovimentoEstoque, error) {
	var out []*entity.MovimentoEstoque
	for _, m := range r.s.movs {
		if m.EstoqueItemID == itemID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeTxRunner executa fn sob mutex e descarta as escritas quando fn falha,
// reproduzindo o Commit/Rollback do runner real.
type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.EstoqueItemRepository,
	movRepo repository.MovimentoEstoqueRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	// Snapshot para rollback
	snapItems := make(map[string]*entity.EstoqueItem, len(t.s.items))
	for k, v := range t.s.items {
		cp := *v
		snapItems[k] = &cp
	}
	snapMovs := len(t.s.movs)

	err := fn(&fakeItemRepo{s: t.s}, &fakeMovRepo{s: t.s})
	if err != nil {
		t.s.items = snapItems
		t.s.movs = t.s.movs[:snapMovs]
	}
	return err
}

func newItem(id, escolaID, qty, unitValue string) *entity.EstoqueItem {
	return &entity.EstoqueItem{
		ID:              id,
		EscolaID:        escolaID,
		AlimentoID:      "alimento-1",
		QuantityOnHand:  dec(qty),
		QuantityMinimum: dec("5"),
		UnitValue:       dec(unitValue),
		ExpirationDate:  time.Now().AddDate(0, 6, 0),
		Lot:             "L001",
	}
}

func setup(items ...*entity.EstoqueItem) (*appestoque.MovimentoUseCase, *fakeStore) {
	s := newFakeStore(items...)
	return appestoque.NewMovimentoUseCase(&fakeTxRunner{s: s}), s
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_Entrada(t *testing.T) {
	uc, s := setup(newItem("item-1", "escola-1", "10", "2.00"))

	unitValue := dec("1.115")
	res, err := uc.ApplyMovement(context.Background(), appestoque.MovimentoInput{
		EscolaID:      "escola-1",
		ActorID:       "user-1",
		EstoqueItemID: "item-1",
		Kind:          ledger.MovementEntrada,
		Quantity:      dec("3"),
		UnitValue:     &unitValue,
		Reason:        "compra licitação 012/2026",
	})
	require.NoError(t, err)

	assert.True(t, res.NewQuantity.Equal(dec("13")), "10 + 3 = 13")
	assert.True(t, res.Movement.TotalValue.Equal(dec("3.35")),
		"total = round(3 × 1.115, 2) = 3.35, obtido %s", res.Movement.TotalValue)

	item := s.items["item-1"]
	assert.True(t, item.QuantityOnHand.Equal(dec("13")))
	assert.NotNil(t, item.LastRestockDate, "entrada atualiza a data da última reposição")
	assert.True(t, item.UnitValue.Equal(unitValue), "entrada registra o novo valor unitário")
	assert.Len(t, s.movs, 1)
}

func TestApplyMovement_UnitValuePadraoDoItem(t *testing.T) {
	uc, s := setup(newItem("item-1", "escola-1", "10", "4.50"))

	res, err := uc.ApplyMovement(context.Background(), appestoque.MovimentoInput{
		EscolaID:      "escola-1",
		ActorID:       "user-1",
		EstoqueItemID: "item-1",
		Kind:          ledger.MovementSaida,
		Quantity:      dec("2"),
	})
	require.NoError(t, err)

	assert.True(t, res.Movement.UnitValue.Equal(dec("4.50")),
		"sem unit_value no request usa o último valor registrado do item")
	assert.True(t, res.Movement.TotalValue.Equal(dec("9.00")))
	assert.Nil(t, s.items["item-1"].LastRestockDate, "saída não toca na data de reposição")
}

func TestApplyMovement_SaidaInsuficienteSemEscritaParcial(t *testing.T) {
	uc, s := setup(newItem("item-1", "escola-1", "5", "1.00"))

	_, err := uc.ApplyMovement(context.Background(), appestoque.MovimentoInput{
		EscolaID:      "escola-1",
		ActorID:       "user-1",
		EstoqueItemID: "item-1",
		Kind:          ledger.MovementSaida,
		Quantity:      dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.items["item-1"].QuantityOnHand.Equal(dec("5")),
		"quantidade intacta após rejeição")
	assert.Empty(t, s.movs, "nenhum movimento gravado após rejeição")
}

func TestApplyMovement_AjusteDefineAbsoluto(t *testing.T) {
	uc, s := setup(newItem("item-1", "escola-1", "120.75", "1.00"))

	res, err := uc.ApplyMovement(context.Background(), appestoque.MovimentoInput{
		EscolaID:      "escola-1",
		ActorID:       "user-1",
		EstoqueItemID: "item-1",
		Kind:          ledger.MovementAjuste,
		Quantity:      dec("50"),
		Reason:        "correção de inventário",
	})
	require.NoError(t, err)
	assert.True(t, res.NewQuantity.Equal(dec("50")))
	assert.True(t, s.items["item-1"].QuantityOnHand.Equal(dec("50")))
}

func TestApplyMovement_ItemInexistente(t *testing.T) {
	uc, _ := setup()

	_, err := uc.ApplyMovement(context.Background(), appestoque.MovimentoInput{
		EscolaID:      "escola-1",
		ActorID:       "user-1",
		EstoqueItemID: "nao-existe",
		Kind:          ledger.MovementEntrada,
		Quantity:      dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_OutraEscolaNegada(t *testing.T) {
	uc, s := setup(newItem("item-1", "escola-1", "10", "1.00"))

	_, err := uc.ApplyMovement(context.Background(), appestoque.MovimentoInput{
		EscolaID:      "escola-2",
		ActorID:       "user-1",
		EstoqueItemID: "item-1",
		Kind:          ledger.MovementSaida,
		Quantity:      dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.True(t, s.items["item-1"].QuantityOnHand.Equal(dec("10")))
}

func TestApplyMovement_SuperAdminSemTenantAcessa(t *testing.T) {
	uc, _ := setup(newItem("item-1", "escola-1", "10", "1.00"))

	res, err := uc.ApplyMovement(context.Background(), appestoque.MovimentoInput{
		EscolaID:      "", // principal global
		ActorID:       "user-admin",
		EstoqueItemID: "item-1",
		Kind:          ledger.MovementSaida,
		Quantity:      dec("4"),
	})
	require.NoError(t, err)
	assert.True(t, res.NewQuantity.Equal(dec("6")))
}

func TestApplyMovement_ValidacaoAntesDeEscrever(t *testing.T) {
	uc, s := setup(newItem("item-1", "escola-1", "10", "1.00"))

	cases := []appestoque.MovimentoInput{
		{EscolaID: "escola-1", EstoqueItemID: "item-1", Kind: ledger.MovementEntrada, Quantity: dec("0")},
		{EscolaID: "escola-1", EstoqueItemID: "item-1", Kind: ledger.MovementSaida, Quantity: dec("-1")},
		{EscolaID: "escola-1", EstoqueItemID: "item-1", Kind: ledger.MovementAjuste, Quantity: dec("-5")},
		{EscolaID: "escola-1", EstoqueItemID: "item-1", Kind: "transferencia", Quantity: dec("1")},
		{EscolaID: "escola-1", EstoqueItemID: "", Kind: ledger.MovementEntrada, Quantity: dec("1")},
	}
	for _, in := range cases {
		_, err := uc.ApplyMovement(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, s.movs)
}

// Reaplicar o histórico gravado a partir de zero reproduz a quantidade
// corrente do item (invariante do livro).
func TestApplyMovement_ReplayReproduzSaldo(t *testing.T) {
	uc, s := setup(newItem("item-1", "escola-1", "0", "1.00"))

	seq := []struct {
		kind string
		qty  string
	}{
		{ledger.MovementEntrada, "10"},
		{ledger.MovementEntrada, "20"},
		{ledger.MovementSaida, "25"},
		{ledger.MovementAjuste, "50"},
		{ledger.MovementSaida, "12.5"},
	}
	for _, m := range seq {
		_, err := uc.ApplyMovement(context.Background(), appestoque.MovimentoInput{
			EscolaID:      "escola-1",
			ActorID:       "user-1",
			EstoqueItemID: "item-1",
			Kind:          m.kind,
			Quantity:      dec(m.qty),
		})
		require.NoError(t, err)
	}

	steps := make([]ledger.ReplayStep, 0, len(s.movs))
	for _, m := range s.movs {
		steps = append(steps, ledger.ReplayStep{Kind: m.Kind, Quantity: m.Quantity})
	}
	replayed, err := ledger.Replay(steps)
	require.NoError(t, err)
	assert.True(t, replayed.Equal(s.items["item-1"].QuantityOnHand),
		"replay %s difere do saldo %s", replayed, s.items["item-1"].QuantityOnHand)
}

// Duas saídas concorrentes de 6 sobre um item com saldo 10: exatamente uma
// deve passar e a outra falhar com estoque insuficiente; saldo final 4 e
// nunca negativo.
func TestApplyMovement_SaidasConcorrentes(t *testing.T) {
	uc, s := setup(newItem("item-1", "escola-1", "10", "1.00"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.ApplyMovement(context.Background(), appestoque.MovimentoInput{
				EscolaID:      "escola-1",
				ActorID:       "user-1",
				EstoqueItemID: "item-1",
				Kind:          ledger.MovementSaida,
				Quantity:      dec("6"),
			})
		}(i)
	}
	wg.Wait()

	var okCount, insuffCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insuffCount++
		}
	}
	assert.Equal(t, 1, okCount, "exatamente uma saída deve ser aplicada")
	assert.Equal(t, 1, insuffCount, "a outra deve ser rejeitada")
	assert.True(t, s.items["item-1"].QuantityOnHand.Equal(dec("4")),
		"saldo final deve ser 4, obtido %s", s.items["item-1"].QuantityOnHand)
	assert.Len(t, s.movs, 1, "apenas o movimento aplicado fica no livro")
}
