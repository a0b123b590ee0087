package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// DashboardCache porta do cache de agregados (implementado sobre Redis; a
// implementação no-op desliga o cache). Miss retorna ("", nil).
type DashboardCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// DashboardUseCase calcula os agregados do painel por escola, com cache TTL
// para aliviar as consultas de contagem.
type DashboardUseCase struct {
	itemRepo    repository.EstoqueItemRepository
	consumoRepo repository.ConsumoRepository
	cache       DashboardCache
	ttl         time.Duration
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(
	itemRepo repository.EstoqueItemRepository,
	consumoRepo repository.ConsumoRepository,
	cache DashboardCache,
) *DashboardUseCase {
	return &DashboardUseCase{
		itemRepo:    itemRepo,
		consumoRepo: consumoRepo,
		cache:       cache,
		ttl:         5 * time.Minute,
	}
}

// Summary devolve os agregados da escola, servindo do cache quando possível.
func (uc *DashboardUseCase) Summary(ctx context.Context, escolaID string) (*dto.DashboardResponse, error) {
	key := "dashboard:escola:" + escolaID
	if cached, err := uc.cache.Get(ctx, key); err == nil && cached != "" {
		var out dto.DashboardResponse
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return &out, nil
		}
		// cache corrompido: recalcula e sobrescreve
	}

	now := time.Now()
	belowMin, err := uc.itemRepo.ListBelowMinimum(escolaID)
	if err != nil {
		return nil, err
	}
	expiring, err := uc.itemRepo.ListExpiringBefore(escolaID, now.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	servings, err := uc.consumoRepo.ServingsInPeriod(escolaID, monthStart, now)
	if err != nil {
		return nil, err
	}
	totalValue, err := uc.itemRepo.TotalValueByEscola(escolaID)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		ItensAbaixoMinimo:   len(belowMin),
		ItensVencendo30Dias: len(expiring),
		RefeicoesNoMes:      servings,
		ValorTotalEstoque:   totalValue,
	}
	if payload, err := json.Marshal(out); err == nil {
		_ = uc.cache.Set(ctx, key, string(payload), uc.ttl) // cache é best-effort
	}
	return out, nil
}
