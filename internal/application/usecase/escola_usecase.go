package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// EscolaUseCase CRUD de escolas (tenants). Operações de escrita são
// restritas ao super_admin pelo middleware de permissões.
type EscolaUseCase struct {
	repo repository.EscolaRepository
}

// NewEscolaUseCase constrói o caso de uso.
func NewEscolaUseCase(repo repository.EscolaRepository) *EscolaUseCase {
	return &EscolaUseCase{repo: repo}
}

// Create cria uma escola ativa.
func (uc *EscolaUseCase) Create(in dto.EscolaRequest) (*entity.Escola, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	escola := &entity.Escola{
		ID:        uuid.New().String(),
		Name:      in.Name,
		INEPCode:  in.INEPCode,
		City:      in.City,
		State:     in.State,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(escola); err != nil {
		return nil, err
	}
	return escola, nil
}

// GetByID devolve a escola ou ErrNotFound.
func (uc *EscolaUseCase) GetByID(id string) (*entity.Escola, error) {
	escola, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if escola == nil {
		return nil, domain.ErrNotFound
	}
	return escola, nil
}

// List lista as escolas cadastradas.
func (uc *EscolaUseCase) List(page dto.PageRequest) ([]*entity.Escola, error) {
	page.DefaultPage()
	return uc.repo.List(page.Limit, page.Offset)
}

// Update atualiza os dados cadastrais da escola.
func (uc *EscolaUseCase) Update(id string, in dto.EscolaRequest) (*entity.Escola, error) {
	escola, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	escola.Name = in.Name
	escola.INEPCode = in.INEPCode
	escola.City = in.City
	escola.State = in.State
	escola.UpdatedAt = time.Now()
	if err := uc.repo.Update(escola); err != nil {
		return nil, err
	}
	return escola, nil
}

// Deactivate desativa a escola (exclusão sempre lógica: o histórico de
// estoque e consumo é preservado).
func (uc *EscolaUseCase) Deactivate(id string) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Deactivate(id)
}
