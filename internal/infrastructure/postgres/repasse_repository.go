package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

var _ repository.RepassePNAERepository = (*RepasseRepo)(nil)

// RepasseRepo implementação do porto RepassePNAERepository sobre PostgreSQL.
type RepasseRepo struct {
	pool *pgxpool.Pool
}

// NewRepasseRepository constrói o adaptador de persistência de repasses.
func NewRepasseRepository(pool *pgxpool.Pool) *RepasseRepo {
	return &RepasseRepo{pool: pool}
}

// Create persiste um repasse do PNAE.
func (r *RepasseRepo) Create(rep *entity.RepassePNAE) error {
	query := `
		INSERT INTO repasses_pnae (id, escola_id, year, reference, amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		rep.ID, rep.EscolaID, rep.Year, rep.Reference, rep.Amount, rep.Date, rep.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert repasse: %w", err)
	}
	return nil
}

// ListByEscolaYear lista os repasses do exercício em ordem de data.
func (r *RepasseRepo) ListByEscolaYear(escolaID string, year int) ([]*entity.RepassePNAE, error) {
	query := `
		SELECT id, escola_id, year, reference, amount, date, created_at
		FROM repasses_pnae WHERE escola_id = $1 AND year = $2 ORDER BY date`
	rows, err := r.pool.Query(context.Background(), query, escolaID, year)
	if err != nil {
		return nil, fmt.Errorf("list repasses: %w", err)
	}
	defer rows.Close()
	var list []*entity.RepassePNAE
	for rows.Next() {
		var rep entity.RepassePNAE
		if err := rows.Scan(&rep.ID, &rep.EscolaID, &rep.Year, &rep.Reference, &rep.Amount, &rep.Date, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan repasse: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}

// TotalByYear soma os repasses do exercício.
func (r *RepasseRepo) TotalByYear(escolaID string, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM repasses_pnae WHERE escola_id = $1 AND year = $2`
	var total decimal.Decimal
	err := r.pool.QueryRow(context.Background(), query, escolaID, year).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total repasses: %w", err)
	}
	return total, nil
}
