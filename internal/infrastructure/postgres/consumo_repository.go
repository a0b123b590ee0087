package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

var _ repository.ConsumoRepository = (*ConsumoRepo)(nil)

// ConsumoRepo implementação do porto ConsumoRepository sobre PostgreSQL
// (usável com pool ou tx, para a baixa automática de estoque).
type ConsumoRepo struct {
	q Querier
}

// NewConsumoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewConsumoRepository(q Querier) *ConsumoRepo {
	return &ConsumoRepo{q: q}
}

// Create grava um registro de consumo.
func (r *ConsumoRepo) Create(c *entity.Consumo) error {
	query := `
		INSERT INTO consumos (id, escola_id, cardapio_id, date, servings, notes, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.EscolaID, c.CardapioID, c.Date, c.Servings, c.Notes, c.ActorID, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumo: %w", err)
	}
	return nil
}

// GetByID obtém um registro de consumo por ID.
func (r *ConsumoRepo) GetByID(id string) (*entity.Consumo, error) {
	query := `
		SELECT id, escola_id, cardapio_id, date, servings, notes, actor_id, created_at
		FROM consumos WHERE id = $1`
	var c entity.Consumo
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.EscolaID, &c.CardapioID, &c.Date, &c.Servings, &c.Notes, &c.ActorID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumo: %w", err)
	}
	return &c, nil
}

// ListByEscola lista os registros da escola; from/to não nulos filtram o período.
func (r *ConsumoRepo) ListByEscola(escolaID string, from, to *time.Time, limit, offset int) ([]*entity.Consumo, error) {
	query := `
		SELECT id, escola_id, cardapio_id, date, servings, notes, actor_id, created_at
		FROM consumos WHERE escola_id = $1`
	args := []any{escolaID, limit, offset}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}
	query += ` ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consumos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Consumo
	for rows.Next() {
		var c entity.Consumo
		if err := rows.Scan(&c.ID, &c.EscolaID, &c.CardapioID, &c.Date, &c.Servings, &c.Notes, &c.ActorID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumo: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ServingsInPeriod soma as porções servidas pela escola no período.
func (r *ConsumoRepo) ServingsInPeriod(escolaID string, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(servings), 0)
		FROM consumos WHERE escola_id = $1 AND date >= $2 AND date <= $3`
	var total int
	err := r.q.QueryRow(context.Background(), query, escolaID, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("servings in period: %w", err)
	}
	return total, nil
}
