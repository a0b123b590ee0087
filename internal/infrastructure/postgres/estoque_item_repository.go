package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

var _ repository.EstoqueItemRepository = (*EstoqueItemRepo)(nil)

// EstoqueItemRepo implementação de EstoqueItemRepository sobre PostgreSQL
// (usável com pool ou tx).
type EstoqueItemRepo struct {
	q Querier
}

// NewEstoqueItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEstoqueItemRepository(q Querier) *EstoqueItemRepo {
	return &EstoqueItemRepo{q: q}
}

const selectEstoqueItem = `
	SELECT id, escola_id, alimento_id, quantity_on_hand, quantity_minimum, unit_value,
	       expiration_date, lot, supplier, last_restock_date, created_at, updated_at
	FROM estoque_itens`

func scanEstoqueItem(row pgx.Row) (*entity.EstoqueItem, error) {
	var i entity.EstoqueItem
	err := row.Scan(
		&i.ID, &i.EscolaID, &i.AlimentoID, &i.QuantityOnHand, &i.QuantityMinimum, &i.UnitValue,
		&i.ExpirationDate, &i.Lot, &i.Supplier, &i.LastRestockDate, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste um novo item de estoque.
func (r *EstoqueItemRepo) Create(item *entity.EstoqueItem) error {
	query := `
		INSERT INTO estoque_itens (id, escola_id, alimento_id, quantity_on_hand, quantity_minimum,
			unit_value, expiration_date, lot, supplier, last_restock_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.EscolaID, item.AlimentoID, item.QuantityOnHand, item.QuantityMinimum,
		item.UnitValue, item.ExpirationDate, item.Lot, item.Supplier, item.LastRestockDate,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert estoque item: %w", err)
	}
	return nil
}

// GetByID obtém um item por ID.
func (r *EstoqueItemRepo) GetByID(id string) (*entity.EstoqueItem, error) {
	item, err := scanEstoqueItem(r.q.QueryRow(context.Background(), selectEstoqueItem+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estoque item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtém o item bloqueando a fila (SELECT FOR UPDATE); serializa
// movimentos concorrentes sobre o mesmo item.
func (r *EstoqueItemRepo) GetForUpdate(id string) (*entity.EstoqueItem, error) {
	item, err := scanEstoqueItem(r.q.QueryRow(context.Background(),
		selectEstoqueItem+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estoque item for update: %w", err)
	}
	return item, nil
}

// UpdateQuantity grava a quantidade em mãos e o valor unitário efetivo;
// lastRestock não nulo também atualiza a data da última reposição.
func (r *EstoqueItemRepo) UpdateQuantity(id string, quantity, unitValue decimal.Decimal, lastRestock *time.Time) error {
	query := `
		UPDATE estoque_itens
		SET quantity_on_hand = $2, unit_value = $3,
		    last_restock_date = COALESCE($4, last_restock_date),
		    updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity, unitValue, lastRestock)
	if err != nil {
		return fmt.Errorf("update estoque quantity: %w", err)
	}
	return nil
}

// Update atualiza os dados cadastrais do item (não a quantidade; essa só
// muda pelo livro de movimentos).
func (r *EstoqueItemRepo) Update(item *entity.EstoqueItem) error {
	query := `
		UPDATE estoque_itens
		SET quantity_minimum = $2, expiration_date = $3, lot = $4, supplier = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuantityMinimum, item.ExpirationDate, item.Lot, item.Supplier, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update estoque item: %w", err)
	}
	return nil
}

// Delete remove um item de estoque.
func (r *EstoqueItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM estoque_itens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete estoque item: %w", err)
	}
	return nil
}

// ListByEscola lista os itens da escola com paginação.
func (r *EstoqueItemRepo) ListByEscola(escolaID string, limit, offset int) ([]*entity.EstoqueItem, error) {
	query := selectEstoqueItem + ` WHERE escola_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryList(query, escolaID, limit, offset)
}

// ListBelowMinimum devolve os itens com quantidade abaixo do mínimo.
func (r *EstoqueItemRepo) ListBelowMinimum(escolaID string) ([]*entity.EstoqueItem, error) {
	query := selectEstoqueItem + `
		WHERE escola_id = $1 AND quantity_minimum > 0 AND quantity_on_hand < quantity_minimum
		ORDER BY (quantity_minimum - quantity_on_hand) DESC`
	return r.queryList(query, escolaID)
}

// ListExpiringBefore devolve os itens com estoque que vencem até a data.
func (r *EstoqueItemRepo) ListExpiringBefore(escolaID string, date time.Time) ([]*entity.EstoqueItem, error) {
	query := selectEstoqueItem + `
		WHERE escola_id = $1 AND quantity_on_hand > 0 AND expiration_date <= $2
		ORDER BY expiration_date`
	return r.queryList(query, escolaID, date)
}

// FindByEscolaAndAlimento localiza os lotes de um alimento na escola por
// ordem de validade (vence primeiro, sai primeiro).
func (r *EstoqueItemRepo) FindByEscolaAndAlimento(escolaID, alimentoID string) ([]*entity.EstoqueItem, error) {
	query := selectEstoqueItem + `
		WHERE escola_id = $1 AND alimento_id = $2 AND quantity_on_hand > 0
		ORDER BY expiration_date`
	return r.queryList(query, escolaID, alimentoID)
}

// TotalValueByEscola soma quantidade × valor unitário dos itens da escola.
func (r *EstoqueItemRepo) TotalValueByEscola(escolaID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity_on_hand * unit_value), 0)
		FROM estoque_itens WHERE escola_id = $1`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, escolaID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total value estoque: %w", err)
	}
	return total.Round(2), nil
}

func (r *EstoqueItemRepo) queryList(query string, args ...any) ([]*entity.EstoqueItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list estoque itens: %w", err)
	}
	defer rows.Close()
	var list []*entity.EstoqueItem
	for rows.Next() {
		item, err := scanEstoqueItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan estoque item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
