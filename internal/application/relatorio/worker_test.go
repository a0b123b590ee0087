package relatorio_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merendatech/merenda-api/internal/application/dto"
	apprelatorio "github.com/merendatech/merenda-api/internal/application/relatorio"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/pkg/logger"
)

type fakeRelatorioRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Relatorio
}

func newFakeRelatorioRepo() *fakeRelatorioRepo {
	return &fakeRelatorioRepo{items: make(map[string]*entity.Relatorio)}
}

func (r *fakeRelatorioRepo) Create(rel *entity.Relatorio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rel
	r.items[rel.ID] = &cp
	return nil
}

func (r *fakeRelatorioRepo) GetByID(id string) (*entity.Relatorio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rel, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *rel
	return &cp, nil
}

func (r *fakeRelatorioRepo) UpdateStatus(id, status, filePath, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rel, ok := r.items[id]
	if !ok {
		return fmt.Errorf("relatório %s não existe", id)
	}
	rel.Status = status
	if filePath != "" {
		rel.FilePath = filePath
	}
	if errorMessage != "" {
		rel.ErrorMessage = errorMessage
	}
	rel.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRelatorioRepo) ListByEscola(string, int, int) ([]*entity.Relatorio, error) {
	return nil, nil
}

func (r *fakeRelatorioRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeRenderer struct {
	mu     sync.Mutex
	calls  int
	failOn map[string]bool
}

func (f *fakeRenderer) Render(r *entity.Relatorio) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.failOn[r.ID] {
		return "", fmt.Errorf("renderização falhou")
	}
	return "/tmp/relatorios/" + r.ID + ".pdf", nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func seed(t *testing.T, repo *fakeRelatorioRepo, id string) {
	t.Helper()
	require.NoError(t, repo.Create(&entity.Relatorio{
		ID:       id,
		EscolaID: "escola-1",
		Kind:     entity.RelatorioEstoquePosicao,
		Status:   entity.RelatorioPendente,
	}))
}

// O worker processa tudo o que foi aceito antes do Stop (drenagem no
// shutdown) e marca cada solicitação como concluída com o caminho do PDF.
func TestWorker_ProcessaEDrenaNoStop(t *testing.T) {
	repo := newFakeRelatorioRepo()
	renderer := &fakeRenderer{}
	w := apprelatorio.NewWorker(repo, renderer, testLogger(), 16)

	ids := []string{"r1", "r2", "r3", "r4", "r5"}
	for _, id := range ids {
		seed(t, repo, id)
	}

	w.Start(2)
	for _, id := range ids {
		require.NoError(t, w.Enqueue(id))
	}
	w.Stop() // espera drenar

	for _, id := range ids {
		rel, err := repo.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, entity.RelatorioConcluido, rel.Status, "relatório %s", id)
		assert.Equal(t, "/tmp/relatorios/"+id+".pdf", rel.FilePath)
		assert.Empty(t, rel.ErrorMessage)
	}
	assert.Equal(t, len(ids), renderer.calls)
}

func TestWorker_FalhaDeRenderizacaoViraErro(t *testing.T) {
	repo := newFakeRelatorioRepo()
	renderer := &fakeRenderer{failOn: map[string]bool{"ruim": true}}
	w := apprelatorio.NewWorker(repo, renderer, testLogger(), 16)

	seed(t, repo, "ruim")
	seed(t, repo, "bom")

	w.Start(1)
	require.NoError(t, w.Enqueue("ruim"))
	require.NoError(t, w.Enqueue("bom"))
	w.Stop()

	ruim, _ := repo.GetByID("ruim")
	assert.Equal(t, entity.RelatorioErro, ruim.Status)
	assert.Contains(t, ruim.ErrorMessage, "renderização falhou")
	assert.Empty(t, ruim.FilePath)

	bom, _ := repo.GetByID("bom")
	assert.Equal(t, entity.RelatorioConcluido, bom.Status,
		"falha de um relatório não afeta os demais")
}

func TestWorker_FilaCheiaRetornaErro(t *testing.T) {
	repo := newFakeRelatorioRepo()
	w := apprelatorio.NewWorker(repo, &fakeRenderer{}, testLogger(), 1)
	// Sem Start: nada consome; o segundo Enqueue deve estourar a fila.
	require.NoError(t, w.Enqueue("a"))
	assert.Error(t, w.Enqueue("b"))
}

// Fila cheia é condição transitória: a solicitação rejeitada não pode
// sobreviver como registro de erro permanente.
func TestRequest_FilaCheiaNaoDeixaRegistro(t *testing.T) {
	repo := newFakeRelatorioRepo()
	w := apprelatorio.NewWorker(repo, &fakeRenderer{}, testLogger(), 1)
	uc := apprelatorio.NewRelatorioUseCase(repo, w)

	in := dto.RelatorioRequest{
		Kind:        entity.RelatorioEstoquePosicao,
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	// Sem Start: a primeira solicitação ocupa a única vaga da fila.
	first, err := uc.Request("escola-1", "user-1", in)
	require.NoError(t, err)

	_, err = uc.Request("escola-1", "user-1", in)
	assert.ErrorIs(t, err, domain.ErrConflict)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.items, 1, "a solicitação rejeitada não persiste")
	_, ok := repo.items[first.ID]
	assert.True(t, ok, "a solicitação aceita permanece pendente")
}
