package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/auth"
	"github.com/merendatech/merenda-api/internal/application/consumo"
	"github.com/merendatech/merenda-api/internal/application/estoque"
	"github.com/merendatech/merenda-api/internal/application/pnae"
	"github.com/merendatech/merenda-api/internal/application/relatorio"
	"github.com/merendatech/merenda-api/internal/application/usecase"
	"github.com/merendatech/merenda-api/internal/domain/rbac"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	EscolaUC     *usecase.EscolaUseCase
	AlimentoUC   *usecase.AlimentoUseCase
	CardapioUC   *usecase.CardapioUseCase
	FornecedorUC *usecase.FornecedorUseCase
	LicitacaoUC  *usecase.LicitacaoUseCase
	DashboardUC  *usecase.DashboardUseCase
	ItensUC      *estoque.ItensUseCase
	MovimentoUC  *estoque.MovimentoUseCase
	ConsumoUC    *consumo.ConsumoUseCase
	RelatorioUC  *relatorio.RelatorioUseCase
	PNAEUC       *pnae.PNAEUseCase
	JWTSecret    string
}

// Router registra as rotas da API. Cada rota protegida carrega a checagem
// de permissão do seu módulo; o escopo por escola vem do token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: apenas o login é público. O cadastro exige operador autenticado
	// com permissão sobre usuários; o primeiro super_admin entra pelo seed.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register",
		RequirePermission(rbac.ModuleUsuarios, rbac.ActionCreate), authHandler.Register)

	// Escolas (protegido, escrita restrita por papel)
	escolas := protected.Group("/escolas")
	escolaHandler := NewEscolaHandler(deps.EscolaUC)
	escolas.Post("/", RequirePermission(rbac.ModuleEscolas, rbac.ActionCreate), escolaHandler.Create)
	escolas.Get("/", RequirePermission(rbac.ModuleEscolas, rbac.ActionRead), escolaHandler.List)
	escolas.Get("/:id", RequirePermission(rbac.ModuleEscolas, rbac.ActionRead), escolaHandler.GetByID)
	escolas.Put("/:id", RequirePermission(rbac.ModuleEscolas, rbac.ActionUpdate), escolaHandler.Update)
	escolas.Delete("/:id", RequirePermission(rbac.ModuleEscolas, rbac.ActionDelete), escolaHandler.Deactivate)

	// Alimentos (protegido, catálogo global)
	alimentos := protected.Group("/alimentos")
	alimentoHandler := NewAlimentoHandler(deps.AlimentoUC)
	alimentos.Post("/", RequirePermission(rbac.ModuleAlimentos, rbac.ActionCreate), alimentoHandler.Create)
	alimentos.Get("/", RequirePermission(rbac.ModuleAlimentos, rbac.ActionRead), alimentoHandler.List)
	alimentos.Get("/:id", RequirePermission(rbac.ModuleAlimentos, rbac.ActionRead), alimentoHandler.GetByID)
	alimentos.Put("/:id", RequirePermission(rbac.ModuleAlimentos, rbac.ActionUpdate), alimentoHandler.Update)
	alimentos.Delete("/:id", RequirePermission(rbac.ModuleAlimentos, rbac.ActionDelete), alimentoHandler.Delete)

	// Cardápios (protegido, por escola)
	cardapios := protected.Group("/cardapios")
	cardapioHandler := NewCardapioHandler(deps.CardapioUC)
	cardapios.Post("/", RequirePermission(rbac.ModuleCardapios, rbac.ActionCreate), cardapioHandler.Create)
	cardapios.Get("/", RequirePermission(rbac.ModuleCardapios, rbac.ActionRead), cardapioHandler.List)
	cardapios.Get("/:id", RequirePermission(rbac.ModuleCardapios, rbac.ActionRead), cardapioHandler.GetByID)
	cardapios.Put("/:id", RequirePermission(rbac.ModuleCardapios, rbac.ActionUpdate), cardapioHandler.Update)
	cardapios.Delete("/:id", RequirePermission(rbac.ModuleCardapios, rbac.ActionDelete), cardapioHandler.Delete)

	// Estoque: itens e livro de movimentos (protegido, por escola)
	estoqueGroup := protected.Group("/estoque")
	estoqueHandler := NewEstoqueHandler(deps.ItensUC, deps.MovimentoUC)
	estoqueGroup.Post("/itens", RequirePermission(rbac.ModuleEstoque, rbac.ActionCreate), estoqueHandler.CreateItem)
	estoqueGroup.Get("/itens", RequirePermission(rbac.ModuleEstoque, rbac.ActionRead), estoqueHandler.ListItems)
	estoqueGroup.Get("/itens/:id", RequirePermission(rbac.ModuleEstoque, rbac.ActionRead), estoqueHandler.GetItem)
	estoqueGroup.Put("/itens/:id", RequirePermission(rbac.ModuleEstoque, rbac.ActionUpdate), estoqueHandler.UpdateItem)
	estoqueGroup.Delete("/itens/:id", RequirePermission(rbac.ModuleEstoque, rbac.ActionDelete), estoqueHandler.DeleteItem)
	estoqueGroup.Post("/itens/:id/movimentos", RequirePermission(rbac.ModuleEstoque, rbac.ActionCreate), estoqueHandler.RegisterMovement)
	estoqueGroup.Get("/itens/:id/movimentos", RequirePermission(rbac.ModuleEstoque, rbac.ActionRead), estoqueHandler.ListMovements)

	// Fornecedores (protegido)
	fornecedores := protected.Group("/fornecedores")
	fornecedorHandler := NewFornecedorHandler(deps.FornecedorUC)
	fornecedores.Post("/", RequirePermission(rbac.ModuleFornecedores, rbac.ActionCreate), fornecedorHandler.Create)
	fornecedores.Get("/", RequirePermission(rbac.ModuleFornecedores, rbac.ActionRead), fornecedorHandler.List)
	fornecedores.Get("/:id", RequirePermission(rbac.ModuleFornecedores, rbac.ActionRead), fornecedorHandler.GetByID)
	fornecedores.Put("/:id", RequirePermission(rbac.ModuleFornecedores, rbac.ActionUpdate), fornecedorHandler.Update)
	fornecedores.Delete("/:id", RequirePermission(rbac.ModuleFornecedores, rbac.ActionDelete), fornecedorHandler.Delete)

	// Licitações (protegido, por escola)
	licitacoes := protected.Group("/licitacoes")
	licitacaoHandler := NewLicitacaoHandler(deps.LicitacaoUC)
	licitacoes.Post("/", RequirePermission(rbac.ModuleLicitacoes, rbac.ActionCreate), licitacaoHandler.Create)
	licitacoes.Get("/", RequirePermission(rbac.ModuleLicitacoes, rbac.ActionRead), licitacaoHandler.List)
	licitacoes.Get("/:id", RequirePermission(rbac.ModuleLicitacoes, rbac.ActionRead), licitacaoHandler.GetByID)
	licitacoes.Put("/:id", RequirePermission(rbac.ModuleLicitacoes, rbac.ActionUpdate), licitacaoHandler.Update)
	licitacoes.Patch("/:id/status", RequirePermission(rbac.ModuleLicitacoes, rbac.ActionUpdate), licitacaoHandler.UpdateStatus)
	licitacoes.Delete("/:id", RequirePermission(rbac.ModuleLicitacoes, rbac.ActionDelete), licitacaoHandler.Delete)

	// Consumo (protegido, por escola)
	consumos := protected.Group("/consumos")
	consumoHandler := NewConsumoHandler(deps.ConsumoUC)
	consumos.Post("/", RequirePermission(rbac.ModuleConsumo, rbac.ActionCreate), consumoHandler.Register)
	consumos.Get("/", RequirePermission(rbac.ModuleConsumo, rbac.ActionRead), consumoHandler.List)

	// Relatórios (protegido, fila de workers)
	relatorios := protected.Group("/relatorios")
	relatorioHandler := NewRelatorioHandler(deps.RelatorioUC)
	relatorios.Post("/", RequirePermission(rbac.ModuleRelatorios, rbac.ActionCreate), relatorioHandler.Request)
	relatorios.Get("/", RequirePermission(rbac.ModuleRelatorios, rbac.ActionRead), relatorioHandler.List)
	relatorios.Get("/:id", RequirePermission(rbac.ModuleRelatorios, rbac.ActionRead), relatorioHandler.GetByID)
	relatorios.Get("/:id/download", RequirePermission(rbac.ModuleRelatorios, rbac.ActionRead), relatorioHandler.Download)

	// PNAE (protegido, por escola)
	pnaeGroup := protected.Group("/pnae")
	pnaeHandler := NewPNAEHandler(deps.PNAEUC)
	pnaeGroup.Post("/repasses", RequirePermission(rbac.ModulePNAE, rbac.ActionCreate), pnaeHandler.RegisterRepasse)
	pnaeGroup.Get("/repasses", RequirePermission(rbac.ModulePNAE, rbac.ActionRead), pnaeHandler.ListRepasses)
	pnaeGroup.Get("/resumo", RequirePermission(rbac.ModulePNAE, rbac.ActionRead), pnaeHandler.Resumo)
	pnaeGroup.Get("/export", RequirePermission(rbac.ModulePNAE, rbac.ActionRead), pnaeHandler.ExportXML)

	// Dashboard (protegido, por escola)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequirePermission(rbac.ModuleDashboard, rbac.ActionRead), dashboardHandler.Summary)
}
