// Package estoque contém a aritmética pura do livro de movimentos de
// estoque: cálculo da nova quantidade por tipo de movimento, valoração e
// replay do histórico. Sem IO; a persistência fica na camada de aplicação.
package estoque

import (
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/domain"
)

// Tipos de movimento de estoque.
const (
	MovementEntrada = "entrada" // soma delta à quantidade atual
	MovementSaida   = "saida"   // subtrai delta; rejeita se exceder o saldo
	MovementAjuste  = "ajuste"  // define a quantidade absoluta (correção de inventário)
)

// ValidKind informa se o tipo de movimento é reconhecido.
func ValidKind(kind string) bool {
	switch kind {
	case MovementEntrada, MovementSaida, MovementAjuste:
		return true
	}
	return false
}

// ValidateQuantity valida a quantidade para o tipo: entrada/saida exigem
// delta positivo; ajuste aceita qualquer alvo não negativo.
func ValidateQuantity(kind string, quantity decimal.Decimal) error {
	switch kind {
	case MovementEntrada, MovementSaida:
		if !quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case MovementAjuste:
		if quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// NewQuantity calcula a quantidade resultante de aplicar o movimento sobre o
// saldo atual. Saída maior que o saldo retorna ErrInsufficientStock sem
// aplicação parcial; o saldo nunca fica negativo.
func NewQuantity(kind string, current, quantity decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateQuantity(kind, quantity); err != nil {
		return decimal.Zero, err
	}
	switch kind {
	case MovementEntrada:
		return current.Add(quantity), nil
	case MovementSaida:
		if quantity.GreaterThan(current) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return current.Sub(quantity), nil
	default: // ajuste: override absoluto
		return quantity, nil
	}
}

// TotalValue valora o movimento: quantidade × valor unitário, arredondado a
// 2 casas decimais (meio para cima).
func TotalValue(quantity, unitValue decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitValue).Round(2)
}

// ReplayStep é a projeção mínima de um movimento para reproduzir o saldo.
type ReplayStep struct {
	Kind     string
	Quantity decimal.Decimal
}

// Replay reaplica a sequência ordenada de movimentos partindo de zero e
// devolve o saldo final. Invariante do livro: o resultado deve coincidir com
// a quantidade corrente do item (entradas somam, saídas subtraem, ajustes
// redefinem o acumulado).
func Replay(steps []ReplayStep) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range steps {
		next, err := NewQuantity(s.Kind, total, s.Quantity)
		if err != nil {
			return decimal.Zero, err
		}
		total = next
	}
	return total, nil
}
