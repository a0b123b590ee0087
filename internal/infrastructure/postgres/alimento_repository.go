package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

var _ repository.AlimentoRepository = (*AlimentoRepo)(nil)

// AlimentoRepo implementação do porto AlimentoRepository sobre PostgreSQL.
type AlimentoRepo struct {
	pool *pgxpool.Pool
}

// NewAlimentoRepository constrói o adaptador de persistência do catálogo.
func NewAlimentoRepository(pool *pgxpool.Pool) *AlimentoRepo {
	return &AlimentoRepo{pool: pool}
}

// Create persiste um novo alimento.
func (r *AlimentoRepo) Create(alimento *entity.Alimento) error {
	query := `
		INSERT INTO alimentos (id, name, name_search, unit_measure, food_group, per_capita, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		alimento.ID, alimento.Name, alimento.NameSearch, alimento.UnitMeasure, alimento.Group,
		alimento.PerCapita, alimento.CreatedAt, alimento.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alimento: %w", err)
	}
	return nil
}

// GetByID obtém um alimento por ID.
func (r *AlimentoRepo) GetByID(id string) (*entity.Alimento, error) {
	query := `
		SELECT id, name, name_search, unit_measure, food_group, per_capita, created_at, updated_at
		FROM alimentos WHERE id = $1`
	var a entity.Alimento
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Name, &a.NameSearch, &a.UnitMeasure, &a.Group, &a.PerCapita, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alimento: %w", err)
	}
	return &a, nil
}

// List lista o catálogo; search (já normalizado) filtra por prefixo ou
// fragmento do nome.
func (r *AlimentoRepo) List(search string, limit, offset int) ([]*entity.Alimento, error) {
	query := `
		SELECT id, name, name_search, unit_measure, food_group, per_capita, created_at, updated_at
		FROM alimentos`
	args := []any{limit, offset}
	if search != "" {
		query += ` WHERE name_search LIKE '%' || $3 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alimentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alimento
	for rows.Next() {
		var a entity.Alimento
		if err := rows.Scan(&a.ID, &a.Name, &a.NameSearch, &a.UnitMeasure, &a.Group, &a.PerCapita, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan alimento: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update atualiza os dados do alimento.
func (r *AlimentoRepo) Update(alimento *entity.Alimento) error {
	query := `
		UPDATE alimentos SET name = $2, name_search = $3, unit_measure = $4, food_group = $5, per_capita = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		alimento.ID, alimento.Name, alimento.NameSearch, alimento.UnitMeasure, alimento.Group,
		alimento.PerCapita, alimento.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update alimento: %w", err)
	}
	return nil
}

// Delete remove um alimento do catálogo.
func (r *AlimentoRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM alimentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete alimento: %w", err)
	}
	return nil
}
