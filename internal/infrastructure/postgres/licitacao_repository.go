package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

var _ repository.LicitacaoRepository = (*LicitacaoRepo)(nil)

// LicitacaoRepo implementação do porto LicitacaoRepository sobre PostgreSQL.
// Processo e itens são gravados juntos numa transação.
type LicitacaoRepo struct {
	pool *pgxpool.Pool
}

// NewLicitacaoRepository constrói o adaptador de persistência de licitações.
func NewLicitacaoRepository(pool *pgxpool.Pool) *LicitacaoRepo {
	return &LicitacaoRepo{pool: pool}
}

// Create persiste o processo e seus itens.
func (r *LicitacaoRepo) Create(l *entity.Licitacao) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO licitacoes (id, escola_id, number, modality, object, status, family_farming,
			year, total_value, opening_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	if _, err := tx.Exec(ctx, query,
		l.ID, l.EscolaID, l.Number, l.Modality, l.Object, l.Status, l.FamilyFarming,
		l.Year, l.TotalValue, l.OpeningDate, l.CreatedAt, l.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert licitacao: %w", err)
	}
	if err := insertLicitacaoItems(ctx, tx, l.ID, l.Items); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtém o processo com os itens carregados.
func (r *LicitacaoRepo) GetByID(id string) (*entity.Licitacao, error) {
	query := `
		SELECT id, escola_id, number, modality, object, status, family_farming,
		       year, total_value, opening_date, created_at, updated_at
		FROM licitacoes WHERE id = $1`
	var l entity.Licitacao
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.EscolaID, &l.Number, &l.Modality, &l.Object, &l.Status, &l.FamilyFarming,
		&l.Year, &l.TotalValue, &l.OpeningDate, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get licitacao: %w", err)
	}
	items, err := r.loadItems(l.ID)
	if err != nil {
		return nil, err
	}
	l.Items = items
	return &l, nil
}

func (r *LicitacaoRepo) loadItems(licitacaoID string) ([]entity.LicitacaoItem, error) {
	query := `
		SELECT id, licitacao_id, alimento_id, COALESCE(fornecedor_id, ''), quantity, unit_price, total_price
		FROM licitacao_itens WHERE licitacao_id = $1 ORDER BY id`
	rows, err := r.pool.Query(context.Background(), query, licitacaoID)
	if err != nil {
		return nil, fmt.Errorf("list licitacao itens: %w", err)
	}
	defer rows.Close()
	var items []entity.LicitacaoItem
	for rows.Next() {
		var it entity.LicitacaoItem
		if err := rows.Scan(&it.ID, &it.LicitacaoID, &it.AlimentoID, &it.FornecedorID,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan licitacao item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByEscola lista os processos da escola; year > 0 filtra pelo exercício.
func (r *LicitacaoRepo) ListByEscola(escolaID string, year int, limit, offset int) ([]*entity.Licitacao, error) {
	query := `
		SELECT id, escola_id, number, modality, object, status, family_farming,
		       year, total_value, opening_date, created_at, updated_at
		FROM licitacoes WHERE escola_id = $1`
	args := []any{escolaID, limit, offset}
	if year > 0 {
		query += ` AND year = $4`
		args = append(args, year)
	}
	query += ` ORDER BY opening_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list licitacoes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Licitacao
	for rows.Next() {
		var l entity.Licitacao
		if err := rows.Scan(&l.ID, &l.EscolaID, &l.Number, &l.Modality, &l.Object, &l.Status,
			&l.FamilyFarming, &l.Year, &l.TotalValue, &l.OpeningDate, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan licitacao: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update substitui os dados do processo e regrava o conjunto de itens.
func (r *LicitacaoRepo) Update(l *entity.Licitacao) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE licitacoes SET number = $2, modality = $3, object = $4, family_farming = $5,
			year = $6, total_value = $7, opening_date = $8, updated_at = $9
		WHERE id = $1`
	if _, err := tx.Exec(ctx, query,
		l.ID, l.Number, l.Modality, l.Object, l.FamilyFarming, l.Year, l.TotalValue,
		l.OpeningDate, l.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update licitacao: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM licitacao_itens WHERE licitacao_id = $1`, l.ID); err != nil {
		return fmt.Errorf("delete licitacao itens: %w", err)
	}
	if err := insertLicitacaoItems(ctx, tx, l.ID, l.Items); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertLicitacaoItems(ctx context.Context, tx pgx.Tx, licitacaoID string, items []entity.LicitacaoItem) error {
	query := `
		INSERT INTO licitacao_itens (id, licitacao_id, alimento_id, fornecedor_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`
	for _, it := range items {
		if _, err := tx.Exec(ctx, query,
			it.ID, licitacaoID, it.AlimentoID, it.FornecedorID, it.Quantity, it.UnitPrice, it.TotalPrice,
		); err != nil {
			return fmt.Errorf("insert licitacao item: %w", err)
		}
	}
	return nil
}

// UpdateStatus grava a transição de situação do processo.
func (r *LicitacaoRepo) UpdateStatus(id, status string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE licitacoes SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update licitacao status: %w", err)
	}
	return nil
}

// Delete remove o processo; os itens caem por ON DELETE CASCADE.
func (r *LicitacaoRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM licitacoes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete licitacao: %w", err)
	}
	return nil
}

// TotalComprasByYear soma o valor dos processos homologados ou encerrados no
// exercício; familyOnly restringe a chamadas públicas de agricultura familiar.
func (r *LicitacaoRepo) TotalComprasByYear(escolaID string, year int, familyOnly bool) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_value), 0)
		FROM licitacoes
		WHERE escola_id = $1 AND year = $2 AND status IN ($3, $4)`
	args := []any{escolaID, year, entity.LicitacaoHomologada, entity.LicitacaoEncerrada}
	if familyOnly {
		query += ` AND family_farming = true`
	}
	var total decimal.Decimal
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total compras: %w", err)
	}
	return total, nil
}
