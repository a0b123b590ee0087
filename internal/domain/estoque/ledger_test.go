package estoque_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/estoque"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewQuantity_Entrada(t *testing.T) {
	got, err := estoque.NewQuantity(estoque.MovementEntrada, dec("10"), dec("20"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("30")), "entrada soma: 10 + 20 = 30, obtido %s", got)
}

func TestNewQuantity_Saida(t *testing.T) {
	got, err := estoque.NewQuantity(estoque.MovementSaida, dec("30"), dec("25"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("5")))
}

func TestNewQuantity_SaidaMaiorQueSaldo(t *testing.T) {
	_, err := estoque.NewQuantity(estoque.MovementSaida, dec("5"), dec("10"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"saída maior que o saldo deve falhar sem aplicação parcial")
}

func TestNewQuantity_SaidaIgualAoSaldoZera(t *testing.T) {
	got, err := estoque.NewQuantity(estoque.MovementSaida, dec("5"), dec("5"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestNewQuantity_AjusteDefineAbsoluto(t *testing.T) {
	// O ajuste ignora o saldo anterior, seja ele maior ou menor.
	for _, prev := range []string{"0", "5", "120.75"} {
		got, err := estoque.NewQuantity(estoque.MovementAjuste, dec(prev), dec("50"))
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("50")), "ajuste com saldo anterior %s", prev)
	}
}

func TestValidateQuantity(t *testing.T) {
	cases := []struct {
		name    string
		kind    string
		qty     string
		wantErr bool
	}{
		{"entrada positiva", estoque.MovementEntrada, "1.5", false},
		{"entrada zero", estoque.MovementEntrada, "0", true},
		{"entrada negativa", estoque.MovementEntrada, "-1", true},
		{"saida positiva", estoque.MovementSaida, "0.001", false},
		{"saida zero", estoque.MovementSaida, "0", true},
		{"ajuste zero", estoque.MovementAjuste, "0", false},
		{"ajuste positivo", estoque.MovementAjuste, "7", false},
		{"ajuste negativo", estoque.MovementAjuste, "-0.01", true},
		{"tipo desconhecido", "transferencia", "1", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := estoque.ValidateQuantity(c.kind, dec(c.qty))
			if c.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTotalValue_ArredondaMeioParaCima(t *testing.T) {
	// 3 × 1.115 = 3.345 -> 3.35 (meio para cima na segunda casa)
	got := estoque.TotalValue(dec("3"), dec("1.115"))
	assert.True(t, got.Equal(dec("3.35")), "esperado 3.35, obtido %s", got)

	got = estoque.TotalValue(dec("2"), dec("4.50"))
	assert.True(t, got.Equal(dec("9.00")))

	// 7 × 0.333 = 2.331 -> 2.33
	got = estoque.TotalValue(dec("7"), dec("0.333"))
	assert.True(t, got.Equal(dec("2.33")))
}

// Reaplicar o histórico ordenado a partir de zero reproduz o saldo exato,
// com o ajuste redefinindo o acumulado no ponto em que ocorre.
func TestReplay_ReproduzSaldo(t *testing.T) {
	steps := []estoque.ReplayStep{
		{Kind: estoque.MovementEntrada, Quantity: dec("10")},
		{Kind: estoque.MovementEntrada, Quantity: dec("20")},
		{Kind: estoque.MovementSaida, Quantity: dec("25")},
		{Kind: estoque.MovementAjuste, Quantity: dec("50")},
		{Kind: estoque.MovementSaida, Quantity: dec("12.5")},
	}
	got, err := estoque.Replay(steps)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("37.5")), "esperado 37.5, obtido %s", got)
}

func TestReplay_HistoricoVazio(t *testing.T) {
	got, err := estoque.Replay(nil)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

// Cenário ponta a ponta da regra de negócio: 10 → +20 → 30 → -25 → 5 →
// saída de 10 rejeitada (saldo mantém 5) → ajuste 50.
func TestCenarioCompleto(t *testing.T) {
	saldo := dec("10")

	saldo, err := estoque.NewQuantity(estoque.MovementEntrada, saldo, dec("20"))
	require.NoError(t, err)
	assert.True(t, saldo.Equal(dec("30")))

	saldo, err = estoque.NewQuantity(estoque.MovementSaida, saldo, dec("25"))
	require.NoError(t, err)
	assert.True(t, saldo.Equal(dec("5")))

	_, err = estoque.NewQuantity(estoque.MovementSaida, saldo, dec("10"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, saldo.Equal(dec("5")), "rejeição não altera o saldo")

	saldo, err = estoque.NewQuantity(estoque.MovementAjuste, saldo, dec("50"))
	require.NoError(t, err)
	assert.True(t, saldo.Equal(dec("50")))
}
