package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

var _ repository.MovimentoEstoqueRepository = (*MovimentoEstoqueRepo)(nil)

// MovimentoEstoqueRepo implementação do livro de movimentos sobre PostgreSQL
// (usável com pool ou tx). Append-only: não há update nem delete.
type MovimentoEstoqueRepo struct {
	q Querier
}

// NewMovimentoEstoqueRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovimentoEstoqueRepository(q Querier) *MovimentoEstoqueRepo {
	return &MovimentoEstoqueRepo{q: q}
}

// Create grava um movimento no livro.
func (r *MovimentoEstoqueRepo) Create(mov *entity.MovimentoEstoque) error {
	query := `
		INSERT INTO movimentos_estoque (id, estoque_item_id, kind, quantity, unit_value, total_value,
			reason, reference_document, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.EstoqueItemID, mov.Kind, mov.Quantity, mov.UnitValue, mov.TotalValue,
		mov.Reason, mov.ReferenceDocument, mov.ActorID, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimento: %w", err)
	}
	return nil
}

// GetByID obtém um movimento por ID.
func (r *MovimentoEstoqueRepo) GetByID(id string) (*entity.MovimentoEstoque, error) {
	query := `
		SELECT id, estoque_item_id, kind, quantity, unit_value, total_value,
		       reason, reference_document, actor_id, created_at
		FROM movimentos_estoque WHERE id = $1`
	var m entity.MovimentoEstoque
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.EstoqueItemID, &m.Kind, &m.Quantity, &m.UnitValue, &m.TotalValue,
		&m.Reason, &m.ReferenceDocument, &m.ActorID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimento: %w", err)
	}
	return &m, nil
}

// ListByItem devolve o histórico do item em ordem cronológica.
func (r *MovimentoEstoqueRepo) ListByItem(estoqueItemID string, limit, offset int) ([]*entity.MovimentoEstoque, error) {
	query := `
		SELECT id, estoque_item_id, kind, quantity, unit_value, total_value,
		       reason, reference_document, actor_id, created_at
		FROM movimentos_estoque WHERE estoque_item_id = $1
		ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, estoqueItemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimentoEstoque
	for rows.Next() {
		var m entity.MovimentoEstoque
		if err := rows.Scan(&m.ID, &m.EstoqueItemID, &m.Kind, &m.Quantity, &m.UnitValue, &m.TotalValue,
			&m.Reason, &m.ReferenceDocument, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
