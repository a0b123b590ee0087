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

var _ repository.RelatorioRepository = (*RelatorioRepo)(nil)

// RelatorioRepo implementação do porto RelatorioRepository sobre PostgreSQL.
type RelatorioRepo struct {
	pool *pgxpool.Pool
}

// NewRelatorioRepository constrói o adaptador de persistência de relatórios.
func NewRelatorioRepository(pool *pgxpool.Pool) *RelatorioRepo {
	return &RelatorioRepo{pool: pool}
}

// Create persiste uma solicitação de relatório.
func (r *RelatorioRepo) Create(rel *entity.Relatorio) error {
	query := `
		INSERT INTO relatorios (id, escola_id, kind, status, period_start, period_end,
			file_path, error_message, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		rel.ID, rel.EscolaID, rel.Kind, rel.Status, rel.PeriodStart, rel.PeriodEnd,
		rel.FilePath, rel.ErrorMessage, rel.RequestedBy, rel.CreatedAt, rel.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert relatorio: %w", err)
	}
	return nil
}

// GetByID obtém uma solicitação por ID.
func (r *RelatorioRepo) GetByID(id string) (*entity.Relatorio, error) {
	query := `
		SELECT id, escola_id, kind, status, period_start, period_end,
		       file_path, error_message, requested_by, created_at, updated_at
		FROM relatorios WHERE id = $1`
	var rel entity.Relatorio
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&rel.ID, &rel.EscolaID, &rel.Kind, &rel.Status, &rel.PeriodStart, &rel.PeriodEnd,
		&rel.FilePath, &rel.ErrorMessage, &rel.RequestedBy, &rel.CreatedAt, &rel.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get relatorio: %w", err)
	}
	return &rel, nil
}

// UpdateStatus grava a transição de status; filePath e errorMessage só são
// gravados quando não vazios.
func (r *RelatorioRepo) UpdateStatus(id, status, filePath, errorMessage string) error {
	query := `
		UPDATE relatorios
		SET status = $2,
		    file_path = CASE WHEN $3 <> '' THEN $3 ELSE file_path END,
		    error_message = CASE WHEN $4 <> '' THEN $4 ELSE error_message END,
		    updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query, id, status, filePath, errorMessage)
	if err != nil {
		return fmt.Errorf("update relatorio status: %w", err)
	}
	return nil
}

// Delete remove uma solicitação.
func (r *RelatorioRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM relatorios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete relatorio: %w", err)
	}
	return nil
}

// ListByEscola lista as solicitações da escola, mais recentes primeiro.
func (r *RelatorioRepo) ListByEscola(escolaID string, limit, offset int) ([]*entity.Relatorio, error) {
	query := `
		SELECT id, escola_id, kind, status, period_start, period_end,
		       file_path, error_message, requested_by, created_at, updated_at
		FROM relatorios WHERE escola_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, escolaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list relatorios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Relatorio
	for rows.Next() {
		var rel entity.Relatorio
		if err := rows.Scan(&rel.ID, &rel.EscolaID, &rel.Kind, &rel.Status, &rel.PeriodStart,
			&rel.PeriodEnd, &rel.FilePath, &rel.ErrorMessage, &rel.RequestedBy,
			&rel.CreatedAt, &rel.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan relatorio: %w", err)
		}
		list = append(list, &rel)
	}
	return list, rows.Err()
}
