package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
	"github.com/merendatech/merenda-api/pkg/strutil"
)

// AlimentoUseCase CRUD do catálogo de gêneros alimentícios, com busca
// insensível a acentos.
type AlimentoUseCase struct {
	repo repository.AlimentoRepository
}

// NewAlimentoUseCase constrói o caso de uso.
func NewAlimentoUseCase(repo repository.AlimentoRepository) *AlimentoUseCase {
	return &AlimentoUseCase{repo: repo}
}

// Create cadastra um alimento; NameSearch guarda o nome normalizado.
func (uc *AlimentoUseCase) Create(in dto.AlimentoRequest) (*entity.Alimento, error) {
	if in.Name == "" || in.UnitMeasure == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PerCapita.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	alimento := &entity.Alimento{
		ID:          uuid.New().String(),
		Name:        in.Name,
		NameSearch:  strutil.Normalize(in.Name),
		UnitMeasure: in.UnitMeasure,
		Group:       in.Group,
		PerCapita:   in.PerCapita,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(alimento); err != nil {
		return nil, err
	}
	return alimento, nil
}

// GetByID devolve o alimento ou ErrNotFound.
func (uc *AlimentoUseCase) GetByID(id string) (*entity.Alimento, error) {
	alimento, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if alimento == nil {
		return nil, domain.ErrNotFound
	}
	return alimento, nil
}

// List lista alimentos; search é normalizado antes da consulta
// ("Feijão" encontra "feijao").
func (uc *AlimentoUseCase) List(search string, page dto.PageRequest) ([]*entity.Alimento, error) {
	page.DefaultPage()
	if search != "" {
		search = strutil.Normalize(search)
	}
	return uc.repo.List(search, page.Limit, page.Offset)
}

// Update atualiza o alimento, renormalizando o nome de busca.
func (uc *AlimentoUseCase) Update(id string, in dto.AlimentoRequest) (*entity.Alimento, error) {
	alimento, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.UnitMeasure == "" {
		return nil, domain.ErrInvalidInput
	}
	alimento.Name = in.Name
	alimento.NameSearch = strutil.Normalize(in.Name)
	alimento.UnitMeasure = in.UnitMeasure
	alimento.Group = in.Group
	alimento.PerCapita = in.PerCapita
	alimento.UpdatedAt = time.Now()
	if err := uc.repo.Update(alimento); err != nil {
		return nil, err
	}
	return alimento, nil
}

// Delete remove o alimento do catálogo.
func (uc *AlimentoUseCase) Delete(id string) error {
	if _, err := uc.GetByID(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}
