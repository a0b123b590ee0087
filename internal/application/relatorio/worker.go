package relatorio

import (
	"fmt"
	"sync"

	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
	"github.com/merendatech/merenda-api/pkg/logger"
)

// Worker consome a fila de relatórios: para cada solicitação marca
// processando, renderiza o PDF e grava concluído (com o caminho) ou erro
// (com a mensagem). Stop fecha a fila e espera drenar, para o shutdown não
// perder solicitações já aceitas.
type Worker struct {
	repo     repository.RelatorioRepository
	renderer Renderer
	log      *logger.Logger

	jobs    chan string
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// NewWorker constrói o worker com a fila de tamanho queueSize.
func NewWorker(repo repository.RelatorioRepository, renderer Renderer, log *logger.Logger, queueSize int) *Worker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Worker{
		repo:     repo,
		renderer: renderer,
		log:      log,
		jobs:     make(chan string, queueSize),
	}
}

// Start lança n goroutines consumidoras.
func (w *Worker) Start(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for id := range w.jobs {
				w.process(id)
			}
		}()
	}
	w.started = true
}

// Enqueue entrega uma solicitação à fila sem bloquear; fila cheia retorna erro.
func (w *Worker) Enqueue(id string) error {
	select {
	case w.jobs <- id:
		return nil
	default:
		return fmt.Errorf("fila de relatórios cheia")
	}
}

// Stop fecha a fila e espera as goroutines drenarem o que já foi aceito.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	close(w.jobs)
	w.wg.Wait()
	w.started = false
}

func (w *Worker) process(id string) {
	r, err := w.repo.GetByID(id)
	if err != nil || r == nil {
		w.log.Error().Err(err).Str("relatorio_id", id).Msg("relatório não encontrado para processar")
		return
	}
	if err := w.repo.UpdateStatus(id, entity.RelatorioProcessando, "", ""); err != nil {
		w.log.Error().Err(err).Str("relatorio_id", id).Msg("marcar relatório como processando")
		return
	}

	path, err := w.renderer.Render(r)
	if err != nil {
		w.log.Error().Err(err).Str("relatorio_id", id).Str("kind", r.Kind).Msg("gerar relatório")
		if uerr := w.repo.UpdateStatus(id, entity.RelatorioErro, "", err.Error()); uerr != nil {
			w.log.Error().Err(uerr).Str("relatorio_id", id).Msg("gravar erro do relatório")
		}
		return
	}
	if err := w.repo.UpdateStatus(id, entity.RelatorioConcluido, path, ""); err != nil {
		w.log.Error().Err(err).Str("relatorio_id", id).Msg("gravar conclusão do relatório")
		return
	}
	w.log.Info().Str("relatorio_id", id).Str("kind", r.Kind).Str("file", path).Msg("relatório gerado")
}
