package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/merendatech/merenda-api/internal/application/auth"
	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/rbac"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	users map[string]*entity.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{users: make(map[string]*entity.Usuario)}
}

func (r *fakeUsuarioRepo) Create(u *entity.Usuario) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) GetByEmailAndEscola(email, escolaID string) (*entity.Usuario, error) {
	for _, u := range r.users {
		if u.Email == email && u.EscolaID == escolaID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) Update(u *entity.Usuario) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUsuarioRepo) ListByEscola(string, int, int) ([]*entity.Usuario, error) { return nil, nil }
func (r *fakeUsuarioRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

type fakeEscolaRepo struct {
	escolas map[string]*entity.Escola
}

func newFakeEscolaRepo(ids ...string) *fakeEscolaRepo {
	r := &fakeEscolaRepo{escolas: make(map[string]*entity.Escola)}
	for _, id := range ids {
		r.escolas[id] = &entity.Escola{ID: id, Name: "EMEF " + id, Active: true}
	}
	return r
}

func (r *fakeEscolaRepo) Create(e *entity.Escola) error { return nil }
func (r *fakeEscolaRepo) GetByID(id string) (*entity.Escola, error) {
	e, ok := r.escolas[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}
func (r *fakeEscolaRepo) List(int, int) ([]*entity.Escola, error) { return nil, nil }
func (r *fakeEscolaRepo) Update(*entity.Escola) error             { return nil }
func (r *fakeEscolaRepo) Deactivate(string) error                 { return nil }

func setup(escolaIDs ...string) (*appauth.AuthUseCase, *fakeUsuarioRepo) {
	users := newFakeUsuarioRepo()
	uc := appauth.NewAuthUseCase(users, newFakeEscolaRepo(escolaIDs...), appauth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "merenda-api-test",
	})
	return uc, users
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes RegisterUser — escopo do operador
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_AdminCriaNaPropriaEscola(t *testing.T) {
	uc, users := setup("escola-1")

	out, err := uc.RegisterUser(rbac.RoleAdmin, "escola-1", dto.RegisterRequest{
		EscolaID: "escola-1",
		Email:    "estoquista@escola.gov.br",
		Password: "senha-forte",
		Name:     "Estoquista",
		Role:     rbac.RoleEstoquista,
	})
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleEstoquista, out.Role)
	assert.Equal(t, "escola-1", out.EscolaID)

	stored, err := users.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "senha-forte", stored.PasswordHash, "senha nunca persiste em claro")
}

func TestRegisterUser_AdminNaoCriaPapelGlobal(t *testing.T) {
	uc, users := setup("escola-1")

	_, err := uc.RegisterUser(rbac.RoleAdmin, "escola-1", dto.RegisterRequest{
		Email:    "intruso@escola.gov.br",
		Password: "senha-forte",
		Role:     rbac.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"operador escopado não pode atribuir papel global")
	assert.Empty(t, users.users, "nada persiste após rejeição")
}

func TestRegisterUser_AdminNaoCriaEmOutraEscola(t *testing.T) {
	uc, users := setup("escola-1", "escola-2")

	_, err := uc.RegisterUser(rbac.RoleAdmin, "escola-1", dto.RegisterRequest{
		EscolaID: "escola-2",
		Email:    "intruso@escola.gov.br",
		Password: "senha-forte",
		Role:     rbac.RoleServidor,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"operador escopado só cadastra na própria escola")
	assert.Empty(t, users.users)
}

func TestRegisterUser_SuperAdminCriaEmQualquerEscola(t *testing.T) {
	uc, _ := setup("escola-1", "escola-2")

	out, err := uc.RegisterUser(rbac.RoleSuperAdmin, "", dto.RegisterRequest{
		EscolaID: "escola-2",
		Email:    "admin@escola2.gov.br",
		Password: "senha-forte",
		Role:     rbac.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "escola-2", out.EscolaID)
}

func TestRegisterUser_SuperAdminCriaOutroGlobal(t *testing.T) {
	uc, _ := setup()

	out, err := uc.RegisterUser(rbac.RoleSuperAdmin, "", dto.RegisterRequest{
		Email:    "global@merenda.gov.br",
		Password: "senha-forte",
		Role:     rbac.RoleSuperAdmin,
	})
	require.NoError(t, err)
	assert.Empty(t, out.EscolaID, "papel global não carrega escola")
}

func TestRegisterUser_PapelInvalido(t *testing.T) {
	uc, _ := setup("escola-1")

	_, err := uc.RegisterUser(rbac.RoleSuperAdmin, "", dto.RegisterRequest{
		EscolaID: "escola-1",
		Email:    "x@escola.gov.br",
		Password: "senha-forte",
		Role:     "diretor",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_EscolaInexistente(t *testing.T) {
	uc, _ := setup("escola-1")

	_, err := uc.RegisterUser(rbac.RoleSuperAdmin, "", dto.RegisterRequest{
		EscolaID: "escola-fantasma",
		Email:    "x@escola.gov.br",
		Password: "senha-forte",
		Role:     rbac.RoleServidor,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterUser_EmailDuplicadoNaEscola(t *testing.T) {
	uc, _ := setup("escola-1")

	in := dto.RegisterRequest{
		EscolaID: "escola-1",
		Email:    "repetido@escola.gov.br",
		Password: "senha-forte",
		Role:     rbac.RoleServidor,
	}
	_, err := uc.RegisterUser(rbac.RoleAdmin, "escola-1", in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(rbac.RoleAdmin, "escola-1", in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes Login
// ──────────────────────────────────────────────────────────────────────────────

func seedUser(t *testing.T, users *fakeUsuarioRepo, email, password string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(&entity.Usuario{
		ID:           "user-" + email,
		EscolaID:     "escola-1",
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Usuária",
		Role:         rbac.RoleAdmin,
		Active:       active,
	}))
}

func TestLogin_SenhaCorretaGeraToken(t *testing.T) {
	uc, users := setup("escola-1")
	seedUser(t, users, "admin@escola.gov.br", "senha-forte", true)

	out, err := uc.Login(dto.LoginRequest{Email: "admin@escola.gov.br", Password: "senha-forte"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin@escola.gov.br", out.User.Email)
}

func TestLogin_SenhaErrada(t *testing.T) {
	uc, users := setup("escola-1")
	seedUser(t, users, "admin@escola.gov.br", "senha-forte", true)

	_, err := uc.Login(dto.LoginRequest{Email: "admin@escola.gov.br", Password: "outra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInativoProibido(t *testing.T) {
	uc, users := setup("escola-1")
	seedUser(t, users, "inativo@escola.gov.br", "senha-forte", false)

	_, err := uc.Login(dto.LoginRequest{Email: "inativo@escola.gov.br", Password: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
