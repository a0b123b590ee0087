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

var _ repository.FornecedorRepository = (*FornecedorRepo)(nil)

// FornecedorRepo implementação do porto FornecedorRepository sobre PostgreSQL.
type FornecedorRepo struct {
	pool *pgxpool.Pool
}

// NewFornecedorRepository constrói o adaptador de persistência de fornecedores.
func NewFornecedorRepository(pool *pgxpool.Pool) *FornecedorRepo {
	return &FornecedorRepo{pool: pool}
}

// Create persiste um novo fornecedor.
func (r *FornecedorRepo) Create(f *entity.Fornecedor) error {
	query := `
		INSERT INTO fornecedores (id, name, cnpj, email, phone, family_farming, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		f.ID, f.Name, f.CNPJ, f.Email, f.Phone, f.FamilyFarming, f.Active, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fornecedor: %w", err)
	}
	return nil
}

// GetByID obtém um fornecedor por ID.
func (r *FornecedorRepo) GetByID(id string) (*entity.Fornecedor, error) {
	query := `
		SELECT id, name, cnpj, email, phone, family_farming, active, created_at, updated_at
		FROM fornecedores WHERE id = $1`
	var f entity.Fornecedor
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.Name, &f.CNPJ, &f.Email, &f.Phone, &f.FamilyFarming, &f.Active, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fornecedor: %w", err)
	}
	return &f, nil
}

// List lista os fornecedores com paginação.
func (r *FornecedorRepo) List(limit, offset int) ([]*entity.Fornecedor, error) {
	query := `
		SELECT id, name, cnpj, email, phone, family_farming, active, created_at, updated_at
		FROM fornecedores ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fornecedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Fornecedor
	for rows.Next() {
		var f entity.Fornecedor
		if err := rows.Scan(&f.ID, &f.Name, &f.CNPJ, &f.Email, &f.Phone, &f.FamilyFarming, &f.Active, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fornecedor: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Update atualiza os dados do fornecedor.
func (r *FornecedorRepo) Update(f *entity.Fornecedor) error {
	query := `
		UPDATE fornecedores SET name = $2, cnpj = $3, email = $4, phone = $5, family_farming = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		f.ID, f.Name, f.CNPJ, f.Email, f.Phone, f.FamilyFarming, f.Active, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fornecedor: %w", err)
	}
	return nil
}

// Delete remove um fornecedor.
func (r *FornecedorRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM fornecedores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fornecedor: %w", err)
	}
	return nil
}
