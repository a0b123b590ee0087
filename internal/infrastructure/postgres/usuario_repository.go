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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação do porto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	pool *pgxpool.Pool
}

// NewUsuarioRepository constrói o adaptador de persistência de usuários.
func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool}
}

// Create persiste um novo usuário.
func (r *UsuarioRepo) Create(user *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, escola_id, email, password_hash, name, role, active, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.EscolaID, user.Email, user.PasswordHash, user.Name, user.Role, user.Active,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtém um usuário por ID.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	query := selectUsuario + ` WHERE id = $1`
	return r.queryOne(query, id)
}

// FindByEmail obtém um usuário por email (qualquer escola).
func (r *UsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) {
	query := selectUsuario + ` WHERE email = $1 LIMIT 1`
	return r.queryOne(query, email)
}

// GetByEmailAndEscola obtém um usuário por email dentro de uma escola.
func (r *UsuarioRepo) GetByEmailAndEscola(email, escolaID string) (*entity.Usuario, error) {
	query := selectUsuario + ` WHERE email = $1 AND escola_id = $2`
	return r.queryOne(query, email, escolaID)
}

const selectUsuario = `
	SELECT id, COALESCE(escola_id, ''), email, password_hash, name, role, active, created_at, updated_at
	FROM usuarios`

func (r *UsuarioRepo) queryOne(query string, args ...any) (*entity.Usuario, error) {
	var u entity.Usuario
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.EscolaID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Active,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// Update atualiza um usuário.
func (r *UsuarioRepo) Update(user *entity.Usuario) error {
	query := `
		UPDATE usuarios SET email = $2, password_hash = $3, name = $4, role = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Active, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// ListByEscola lista os usuários da escola com paginação.
func (r *UsuarioRepo) ListByEscola(escolaID string, limit, offset int) ([]*entity.Usuario, error) {
	query := selectUsuario + ` WHERE escola_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, escolaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.ID, &u.EscolaID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete remove um usuário por ID.
func (r *UsuarioRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}
