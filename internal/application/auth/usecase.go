package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/rbac"
	"github.com/merendatech/merenda-api/internal/domain/repository"
	"github.com/merendatech/merenda-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens de sessão.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: cadastro, login e perfil.
// Sessões são stateless: o token assinado expira sozinho, sem lista de
// revogação no servidor.
type AuthUseCase struct {
	userRepo   repository.UsuarioRepository
	escolaRepo repository.EscolaRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UsuarioRepository, escolaRepo repository.EscolaRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, escolaRepo: escolaRepo, jwtCfg: jwtCfg}
}

// RegisterUser cria um usuário em nome de um operador autenticado: valida o
// papel contra o conjunto fechado, exige escola para papéis não globais,
// hasheia a senha com bcrypt e persiste. Operador sem escopo global só cria
// usuários na própria escola e nunca papéis globais; o primeiro super_admin
// entra pelo binário de seed, não por aqui. Devolve ErrEmailAlreadyExists se
// o e-mail já existe na escola.
func (uc *AuthUseCase) RegisterUser(actorRole, actorEscolaID string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !rbac.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if !rbac.GlobalRole(actorRole) {
		if rbac.GlobalRole(in.Role) {
			return nil, domain.ErrForbidden
		}
		if in.EscolaID != actorEscolaID {
			return nil, domain.ErrForbidden
		}
	}
	if rbac.GlobalRole(in.Role) {
		if in.EscolaID != "" {
			return nil, domain.ErrInvalidInput
		}
	} else {
		if in.EscolaID == "" {
			return nil, domain.ErrInvalidInput
		}
		escola, err := uc.escolaRepo.GetByID(in.EscolaID)
		if err != nil {
			return nil, err
		}
		if escola == nil {
			return nil, domain.ErrNotFound
		}
	}

	existing, _ := uc.userRepo.GetByEmailAndEscola(in.Email, in.EscolaID)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.Usuario{
		ID:           uuid.New().String(),
		EscolaID:     in.EscolaID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/senha, gera o token de sessão (24h por padrão) e
// retorna token + usuário.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Principal{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		EscolaID: user.EscolaID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me devolve o perfil do usuário autenticado.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.Usuario) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		EscolaID:  u.EscolaID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
