package consumo_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconsumo "github.com/merendatech/merenda-api/internal/application/consumo"
	"github.com/merendatech/merenda-api/internal/application/dto"
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
// Fakes em memória. O fakeTxRunner tira snapshot antes de fn e restaura
// quando fn falha, reproduzindo o Commit/Rollback do runner real: consumo e
// saídas de estoque são uma unidade.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu       sync.Mutex
	items    map[string]*entity.EstoqueItem
	movs     []*entity.MovimentoEstoque
	consumos []*entity.Consumo
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

// FindByEscolaAndAlimento devolve os lotes com saldo ordenados por validade,
// como o SQL real (FEFO).
func (r *fakeItemRepo) FindByEscolaAndAlimento(escolaID, alimentoID string) ([]*entity.EstoqueItem, error) {
	var out []*entity.EstoqueItem
	for _, it := range r.s.items {
		if it.EscolaID == escolaID && it.AlimentoID == alimentoID && it.QuantityOnHand.GreaterThan(decimal.Zero) {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ExpirationDate.Before(out[j].ExpirationDate)
	})
	return out, nil
}

func (r *fakeItemRepo) ListByEscola(string, int, int) ([]*entity.EstoqueItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) ListBelowMinimum(string) ([]*entity.EstoqueItem, error) { return nil, nil }
func (r *fakeItemRepo) ListExpiringBefore(string, time.Time) ([]*entity.EstoqueItem, error) {
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

func (r *fakeMovRepo) GetByID(string) (*entity.MovimentoEstoque, error) { return nil, nil }

func (r *fakeMovRepo) ListByItem(string, int, int) ([]*entity.MovimentoEstoque, error) {
	return nil, nil
}

type fakeConsumoRepo struct{ s *fakeStore }

func (r *fakeConsumoRepo) Create(c *entity.Consumo) error {
	cp := *c
	r.s.consumos = append(r.s.consumos, &cp)
	return nil
}

func (r *fakeConsumoRepo) GetByID(string) (*entity.Consumo, error) { return nil, nil }

func (r *fakeConsumoRepo) ListByEscola(escolaID string, _, _ *time.Time, _, _ int) ([]*entity.Consumo, error) {
	var out []*entity.Consumo
	for _, c := range r.s.consumos {
		if c.EscolaID == escolaID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeConsumoRepo) ServingsInPeriod(string, time.Time, time.Time) (int, error) {
	return 0, nil
}

type fakeCardapioRepo struct{ cardapio *entity.Cardapio }

func (r *fakeCardapioRepo) Create(*entity.Cardapio) error { return nil }
func (r *fakeCardapioRepo) GetByID(id string) (*entity.Cardapio, error) {
	if r.cardapio != nil && r.cardapio.ID == id {
		cp := *r.cardapio
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeCardapioRepo) ListByEscola(string, int, int) ([]*entity.Cardapio, error) {
	return nil, nil
}
func (r *fakeCardapioRepo) Update(*entity.Cardapio) error { return nil }
func (r *fakeCardapioRepo) Delete(string) error           { return nil }

// fakeTxRunner implementa os dois runners (estoque e consumo) sobre o mesmo
// store, com snapshot/rollback.
type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) snapshot() (map[string]*entity.EstoqueItem, int, int) {
	snapItems := make(map[string]*entity.EstoqueItem, len(t.s.items))
	for k, v := range t.s.items {
		cp := *v
		snapItems[k] = &cp
	}
	return snapItems, len(t.s.movs), len(t.s.consumos)
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.EstoqueItemRepository,
	movRepo repository.MovimentoEstoqueRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snapItems, snapMovs, _ := t.snapshot()
	err := fn(&fakeItemRepo{s: t.s}, &fakeMovRepo{s: t.s})
	if err != nil {
		t.s.items = snapItems
		t.s.movs = t.s.movs[:snapMovs]
	}
	return err
}

func (t *fakeTxRunner) RunConsumo(_ context.Context, fn func(
	consumoRepo repository.ConsumoRepository,
	itemRepo repository.EstoqueItemRepository,
	movRepo repository.MovimentoEstoqueRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snapItems, snapMovs, snapConsumos := t.snapshot()
	err := fn(&fakeConsumoRepo{s: t.s}, &fakeItemRepo{s: t.s}, &fakeMovRepo{s: t.s})
	if err != nil {
		t.s.items = snapItems
		t.s.movs = t.s.movs[:snapMovs]
		t.s.consumos = t.s.consumos[:snapConsumos]
	}
	return err
}

func newLote(id, alimentoID, qty string, expiraEmMeses int) *entity.EstoqueItem {
	return &entity.EstoqueItem{
		ID:             id,
		EscolaID:       "escola-1",
		AlimentoID:     alimentoID,
		QuantityOnHand: dec(qty),
		UnitValue:      dec("1.00"),
		ExpirationDate: time.Now().AddDate(0, expiraEmMeses, 0),
		Lot:            "L-" + id,
	}
}

func setup(cardapio *entity.Cardapio, items ...*entity.EstoqueItem) (*appconsumo.ConsumoUseCase, *fakeStore) {
	s := newFakeStore(items...)
	runner := &fakeTxRunner{s: s}
	movimentoUC := appestoque.NewMovimentoUseCase(runner)
	uc := appconsumo.NewConsumoUseCase(runner, &fakeCardapioRepo{cardapio: cardapio}, &fakeConsumoRepo{s: s}, movimentoUC)
	return uc, s
}

func cardapioAlmoco() *entity.Cardapio {
	return &entity.Cardapio{
		ID:       "cardapio-1",
		EscolaID: "escola-1",
		Name:     "Arroz com feijão",
		MealType: entity.MealTypeAlmoco,
		Items: []entity.CardapioItem{
			{ID: "ci-1", CardapioID: "cardapio-1", AlimentoID: "arroz", PerCapita: dec("0.1")},
			{ID: "ci-2", CardapioID: "cardapio-1", AlimentoID: "feijao", PerCapita: dec("0.05")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_SemBaixaNaoTocaEstoque(t *testing.T) {
	uc, s := setup(cardapioAlmoco(), newLote("arroz-1", "arroz", "20", 6))

	c, err := uc.Register(context.Background(), "escola-1", "user-1", dto.ConsumoRequest{
		CardapioID:     "cardapio-1",
		Date:           time.Now(),
		Servings:       100,
		DebitarEstoque: false,
	})
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Len(t, s.consumos, 1)
	assert.Empty(t, s.movs, "sem baixa automática não há movimentos")
	assert.True(t, s.items["arroz-1"].QuantityOnHand.Equal(dec("20")))
}

func TestRegister_BaixaDebitaPerCapitaVezesPorcoes(t *testing.T) {
	uc, s := setup(cardapioAlmoco(),
		newLote("arroz-1", "arroz", "20", 6),
		newLote("feijao-1", "feijao", "10", 6),
	)

	// 100 porções: 100 × 0.1 = 10 de arroz, 100 × 0.05 = 5 de feijão.
	_, err := uc.Register(context.Background(), "escola-1", "user-1", dto.ConsumoRequest{
		CardapioID:     "cardapio-1",
		Date:           time.Now(),
		Servings:       100,
		DebitarEstoque: true,
	})
	require.NoError(t, err)

	assert.True(t, s.items["arroz-1"].QuantityOnHand.Equal(dec("10")),
		"20 - 10 = 10, obtido %s", s.items["arroz-1"].QuantityOnHand)
	assert.True(t, s.items["feijao-1"].QuantityOnHand.Equal(dec("5")))
	assert.Len(t, s.movs, 2, "uma saída por ingrediente")
	for _, m := range s.movs {
		assert.Equal(t, ledger.MovementSaida, m.Kind)
		assert.Contains(t, m.ReferenceDocument, "consumo:")
	}
}

func TestRegister_BaixaFEFOConsumeLotePorValidade(t *testing.T) {
	// Lote que vence antes deve ser consumido primeiro e esgotado antes do
	// seguinte.
	uc, s := setup(cardapioAlmoco(),
		newLote("arroz-velho", "arroz", "6", 1),
		newLote("arroz-novo", "arroz", "20", 8),
		newLote("feijao-1", "feijao", "10", 6),
	)

	_, err := uc.Register(context.Background(), "escola-1", "user-1", dto.ConsumoRequest{
		CardapioID:     "cardapio-1",
		Date:           time.Now(),
		Servings:       100, // 10 de arroz: 6 do lote velho + 4 do novo
		DebitarEstoque: true,
	})
	require.NoError(t, err)

	assert.True(t, s.items["arroz-velho"].QuantityOnHand.IsZero(),
		"lote mais próximo do vencimento esgota primeiro")
	assert.True(t, s.items["arroz-novo"].QuantityOnHand.Equal(dec("16")))
}

func TestRegister_EstoqueInsuficienteAbortaTudo(t *testing.T) {
	// Arroz cobre, feijão não: nada pode persistir.
	uc, s := setup(cardapioAlmoco(),
		newLote("arroz-1", "arroz", "20", 6),
		newLote("feijao-1", "feijao", "2", 6),
	)

	_, err := uc.Register(context.Background(), "escola-1", "user-1", dto.ConsumoRequest{
		CardapioID:     "cardapio-1",
		Date:           time.Now(),
		Servings:       100, // precisa de 5 de feijão, há 2
		DebitarEstoque: true,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, s.consumos, "registro de consumo não persiste")
	assert.Empty(t, s.movs, "nenhuma saída parcial persiste")
	assert.True(t, s.items["arroz-1"].QuantityOnHand.Equal(dec("20")),
		"débito do arroz desfeito junto")
	assert.True(t, s.items["feijao-1"].QuantityOnHand.Equal(dec("2")))
}

func TestRegister_CardapioDeOutraEscola(t *testing.T) {
	cardapio := cardapioAlmoco()
	cardapio.EscolaID = "escola-2"
	uc, _ := setup(cardapio)

	_, err := uc.Register(context.Background(), "escola-1", "user-1", dto.ConsumoRequest{
		CardapioID: "cardapio-1",
		Date:       time.Now(),
		Servings:   10,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc, _ := setup(cardapioAlmoco())

	_, err := uc.Register(context.Background(), "escola-1", "user-1", dto.ConsumoRequest{
		CardapioID: "cardapio-1",
		Date:       time.Now(),
		Servings:   0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
