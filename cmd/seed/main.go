// seed popula o banco com uma escola de demonstração e um usuário por papel,
// todos com a senha indicada (padrão "merenda123"). Idempotente: usuários já
// existentes são pulados.
//
// Uso: go run ./cmd/seed [senha]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/rbac"
	"github.com/merendatech/merenda-api/internal/infrastructure/postgres"
	"github.com/merendatech/merenda-api/pkg/config"
)

func main() {
	password := "merenda123"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexão com o PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	escolaRepo := postgres.NewEscolaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)

	now := time.Now()
	escola := &entity.Escola{
		ID:        uuid.New().String(),
		Name:      "EMEF Demonstração",
		INEPCode:  "35000001",
		City:      "São Paulo",
		State:     "SP",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Reaproveita a escola demo se o seed já rodou antes.
	existing, err := escolaRepo.List(1, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "listar escolas: %v\n", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		escola = existing[0]
		fmt.Printf("escola existente reutilizada: %s (%s)\n", escola.Name, escola.ID)
	} else {
		if err := escolaRepo.Create(escola); err != nil {
			fmt.Fprintf(os.Stderr, "criar escola: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("escola criada: %s (%s)\n", escola.Name, escola.ID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gerar hash da senha: %v\n", err)
		os.Exit(1)
	}

	seeds := []struct {
		email string
		name  string
		role  string
	}{
		{"superadmin@merenda.gov.br", "Super Admin", rbac.RoleSuperAdmin},
		{"admin@merenda.gov.br", "Administradora da Escola", rbac.RoleAdmin},
		{"nutricionista@merenda.gov.br", "Nutricionista", rbac.RoleNutricionista},
		{"estoquista@merenda.gov.br", "Estoquista", rbac.RoleEstoquista},
		{"servidor@merenda.gov.br", "Servidor da Cozinha", rbac.RoleServidor},
	}

	for _, s := range seeds {
		found, err := usuarioRepo.FindByEmail(s.email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "buscar usuário %s: %v\n", s.email, err)
			os.Exit(1)
		}
		if found != nil {
			fmt.Printf("usuário existente pulado: %s\n", s.email)
			continue
		}
		escolaID := escola.ID
		if rbac.GlobalRole(s.role) {
			escolaID = ""
		}
		u := &entity.Usuario{
			ID:           uuid.New().String(),
			EscolaID:     escolaID,
			Email:        s.email,
			PasswordHash: string(hash),
			Name:         s.name,
			Role:         s.role,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := usuarioRepo.Create(u); err != nil {
			fmt.Fprintf(os.Stderr, "criar usuário %s: %v\n", s.email, err)
			os.Exit(1)
		}
		fmt.Printf("usuário criado: %s (%s)\n", s.email, s.role)
	}

	fmt.Println("seed concluído")
}
