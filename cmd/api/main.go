package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/merendatech/merenda-api/internal/application/auth"
	appconsumo "github.com/merendatech/merenda-api/internal/application/consumo"
	appestoque "github.com/merendatech/merenda-api/internal/application/estoque"
	apppnae "github.com/merendatech/merenda-api/internal/application/pnae"
	apprelatorio "github.com/merendatech/merenda-api/internal/application/relatorio"
	"github.com/merendatech/merenda-api/internal/application/usecase"
	"github.com/merendatech/merenda-api/internal/infrastructure/cache"
	infrapdf "github.com/merendatech/merenda-api/internal/infrastructure/pdf"
	"github.com/merendatech/merenda-api/internal/infrastructure/postgres"
	httpRouter "github.com/merendatech/merenda-api/internal/interfaces/http"
	"github.com/merendatech/merenda-api/pkg/config"
	"github.com/merendatech/merenda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	escolaRepo := postgres.NewEscolaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	alimentoRepo := postgres.NewAlimentoRepository(pool)
	cardapioRepo := postgres.NewCardapioRepository(pool)
	fornecedorRepo := postgres.NewFornecedorRepository(pool)
	licitacaoRepo := postgres.NewLicitacaoRepository(pool)
	itemRepo := postgres.NewEstoqueItemRepository(pool)
	movRepo := postgres.NewMovimentoEstoqueRepository(pool)
	consumoRepo := postgres.NewConsumoRepository(pool)
	relatorioRepo := postgres.NewRelatorioRepository(pool)
	repasseRepo := postgres.NewRepasseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, escolaRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	escolaUC := usecase.NewEscolaUseCase(escolaRepo)
	alimentoUC := usecase.NewAlimentoUseCase(alimentoRepo)
	cardapioUC := usecase.NewCardapioUseCase(cardapioRepo, alimentoRepo)
	fornecedorUC := usecase.NewFornecedorUseCase(fornecedorRepo)
	licitacaoUC := usecase.NewLicitacaoUseCase(licitacaoRepo, alimentoRepo, fornecedorRepo)
	movimentoUC := appestoque.NewMovimentoUseCase(txRunner)
	itensUC := appestoque.NewItensUseCase(itemRepo, movRepo, alimentoRepo)
	consumoUC := appconsumo.NewConsumoUseCase(txRunner, cardapioRepo, consumoRepo, movimentoUC)
	pnaeUC := apppnae.NewPNAEUseCase(repasseRepo, licitacaoRepo, escolaRepo)

	// Cache do dashboard: Redis quando configurado, noop caso contrário.
	var dashCache usecase.DashboardCache = cache.NoopCache{}
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis indisponível, dashboard sem cache")
		} else {
			defer redisCache.Close()
			dashCache = redisCache
		}
	}
	dashboardUC := usecase.NewDashboardUseCase(itemRepo, consumoRepo, dashCache)

	// Relatórios: fila limitada + workers renderizando PDF via maroto.
	renderer := infrapdf.NewMarotoRenderer(
		cfg.Reports.OutputDir,
		escolaRepo, itemRepo, alimentoRepo, consumoRepo, cardapioRepo,
	)
	worker := apprelatorio.NewWorker(relatorioRepo, renderer, log, cfg.Reports.QueueSize)
	worker.Start(cfg.Reports.Workers)
	relatorioUC := apprelatorio.NewRelatorioUseCase(relatorioRepo, worker)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Merenda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		EscolaUC:     escolaUC,
		AlimentoUC:   alimentoUC,
		CardapioUC:   cardapioUC,
		FornecedorUC: fornecedorUC,
		LicitacaoUC:  licitacaoUC,
		DashboardUC:  dashboardUC,
		ItensUC:      itensUC,
		MovimentoUC:  movimentoUC,
		ConsumoUC:    consumoUC,
		RelatorioUC:  relatorioUC,
		PNAEUC:       pnaeUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	// Drena a fila de relatórios antes de soltar o pool.
	worker.Stop()

	log.Info().Msg("aplicação encerrada")
}
