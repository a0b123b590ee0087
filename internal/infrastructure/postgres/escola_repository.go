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

var _ repository.EscolaRepository = (*EscolaRepo)(nil)

// EscolaRepo implementação do porto EscolaRepository sobre PostgreSQL.
type EscolaRepo struct {
	pool *pgxpool.Pool
}

// NewEscolaRepository constrói o adaptador de persistência de escolas.
func NewEscolaRepository(pool *pgxpool.Pool) *EscolaRepo {
	return &EscolaRepo{pool: pool}
}

// Create persiste uma nova escola.
func (r *EscolaRepo) Create(escola *entity.Escola) error {
	query := `
		INSERT INTO escolas (id, name, inep_code, city, state, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		escola.ID, escola.Name, escola.INEPCode, escola.City, escola.State, escola.Active,
		escola.CreatedAt, escola.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert escola: %w", err)
	}
	return nil
}

// GetByID obtém uma escola por ID.
func (r *EscolaRepo) GetByID(id string) (*entity.Escola, error) {
	query := `
		SELECT id, name, inep_code, city, state, active, created_at, updated_at
		FROM escolas WHERE id = $1`
	var e entity.Escola
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Name, &e.INEPCode, &e.City, &e.State, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get escola: %w", err)
	}
	return &e, nil
}

// List lista as escolas com paginação.
func (r *EscolaRepo) List(limit, offset int) ([]*entity.Escola, error) {
	query := `
		SELECT id, name, inep_code, city, state, active, created_at, updated_at
		FROM escolas ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list escolas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Escola
	for rows.Next() {
		var e entity.Escola
		if err := rows.Scan(&e.ID, &e.Name, &e.INEPCode, &e.City, &e.State, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan escola: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update atualiza os dados da escola.
func (r *EscolaRepo) Update(escola *entity.Escola) error {
	query := `
		UPDATE escolas SET name = $2, inep_code = $3, city = $4, state = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		escola.ID, escola.Name, escola.INEPCode, escola.City, escola.State, escola.Active, escola.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update escola: %w", err)
	}
	return nil
}

// Deactivate desativa a escola (exclusão lógica).
func (r *EscolaRepo) Deactivate(id string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE escolas SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate escola: %w", err)
	}
	return nil
}
