package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

var _ repository.CardapioRepository = (*CardapioRepo)(nil)

// CardapioRepo implementação do porto CardapioRepository sobre PostgreSQL.
// Cardápio e itens são gravados juntos numa transação.
type CardapioRepo struct {
	pool *pgxpool.Pool
}

// NewCardapioRepository constrói o adaptador de persistência de cardápios.
func NewCardapioRepository(pool *pgxpool.Pool) *CardapioRepo {
	return &CardapioRepo{pool: pool}
}

// Create persiste o cardápio e seus itens.
func (r *CardapioRepo) Create(cardapio *entity.Cardapio) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO cardapios (id, escola_id, name, week_day, meal_type, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.Exec(ctx, query,
		cardapio.ID, cardapio.EscolaID, cardapio.Name, cardapio.WeekDay, cardapio.MealType,
		cardapio.Notes, cardapio.CreatedAt, cardapio.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert cardapio: %w", err)
	}
	if err := insertCardapioItems(ctx, tx, cardapio.ID, cardapio.Items); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtém o cardápio com os itens carregados.
func (r *CardapioRepo) GetByID(id string) (*entity.Cardapio, error) {
	query := `
		SELECT id, escola_id, name, week_day, meal_type, notes, created_at, updated_at
		FROM cardapios WHERE id = $1`
	var c entity.Cardapio
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.EscolaID, &c.Name, &c.WeekDay, &c.MealType, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cardapio: %w", err)
	}
	items, err := r.loadItems(c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *CardapioRepo) loadItems(cardapioID string) ([]entity.CardapioItem, error) {
	query := `
		SELECT id, cardapio_id, alimento_id, per_capita
		FROM cardapio_itens WHERE cardapio_id = $1 ORDER BY id`
	rows, err := r.pool.Query(context.Background(), query, cardapioID)
	if err != nil {
		return nil, fmt.Errorf("list cardapio itens: %w", err)
	}
	defer rows.Close()
	var items []entity.CardapioItem
	for rows.Next() {
		var it entity.CardapioItem
		if err := rows.Scan(&it.ID, &it.CardapioID, &it.AlimentoID, &it.PerCapita); err != nil {
			return nil, fmt.Errorf("scan cardapio item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByEscola lista os cardápios da escola (sem itens, para a listagem).
func (r *CardapioRepo) ListByEscola(escolaID string, limit, offset int) ([]*entity.Cardapio, error) {
	query := `
		SELECT id, escola_id, name, week_day, meal_type, notes, created_at, updated_at
		FROM cardapios WHERE escola_id = $1
		ORDER BY week_day, meal_type LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, escolaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cardapios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cardapio
	for rows.Next() {
		var c entity.Cardapio
		if err := rows.Scan(&c.ID, &c.EscolaID, &c.Name, &c.WeekDay, &c.MealType, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cardapio: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update substitui os dados do cardápio e regrava o conjunto de itens.
func (r *CardapioRepo) Update(cardapio *entity.Cardapio) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE cardapios SET name = $2, week_day = $3, meal_type = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	if _, err := tx.Exec(ctx, query,
		cardapio.ID, cardapio.Name, cardapio.WeekDay, cardapio.MealType, cardapio.Notes, cardapio.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update cardapio: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cardapio_itens WHERE cardapio_id = $1`, cardapio.ID); err != nil {
		return fmt.Errorf("delete cardapio itens: %w", err)
	}
	if err := insertCardapioItems(ctx, tx, cardapio.ID, cardapio.Items); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertCardapioItems(ctx context.Context, tx pgx.Tx, cardapioID string, items []entity.CardapioItem) error {
	query := `
		INSERT INTO cardapio_itens (id, cardapio_id, alimento_id, per_capita)
		VALUES ($1, $2, $3, $4)`
	for _, it := range items {
		if _, err := tx.Exec(ctx, query, it.ID, cardapioID, it.AlimentoID, it.PerCapita); err != nil {
			return fmt.Errorf("insert cardapio item: %w", err)
		}
	}
	return nil
}

// Delete remove o cardápio; os itens caem por ON DELETE CASCADE.
func (r *CardapioRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM cardapios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cardapio: %w", err)
	}
	return nil
}
