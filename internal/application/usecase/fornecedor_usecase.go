package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// FornecedorUseCase CRUD de fornecedores.
type FornecedorUseCase struct {
	repo repository.FornecedorRepository
}

// NewFornecedorUseCase constrói o caso de uso.
func NewFornecedorUseCase(repo repository.FornecedorRepository) *FornecedorUseCase {
	return &FornecedorUseCase{repo: repo}
}

// Create cadastra um fornecedor ativo.
func (uc *FornecedorUseCase) Create(in dto.FornecedorRequest) (*entity.Fornecedor, error) {
	if in.Name == "" || in.CNPJ == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	f := &entity.Fornecedor{
		ID:            uuid.New().String(),
		Name:          in.Name,
		CNPJ:          in.CNPJ,
		Email:         in.Email,
		Phone:         in.Phone,
		FamilyFarming: in.FamilyFarming,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetByID devolve o fornecedor ou ErrNotFound.
func (uc *FornecedorUseCase) GetByID(id string) (*entity.Fornecedor, error) {
	f, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

// List lista fornecedores.
func (uc *FornecedorUseCase) List(page dto.PageRequest) ([]*entity.Fornecedor, error) {
	page.DefaultPage()
	return uc.repo.List(page.Limit, page.Offset)
}

// Update atualiza os dados do fornecedor.
func (uc *FornecedorUseCase) Update(id string, in dto.FornecedorRequest) (*entity.Fornecedor, error) {
	f, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.CNPJ == "" {
		return nil, domain.ErrInvalidInput
	}
	f.Name = in.Name
	f.CNPJ = in.CNPJ
	f.Email = in.Email
	f.Phone = in.Phone
	f.FamilyFarming = in.FamilyFarming
	f.UpdatedAt = time.Now()
	if err := uc.repo.Update(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete remove o fornecedor.
func (uc *FornecedorUseCase) Delete(id string) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
