// Package pdf implementa a renderização dos relatórios em PDF (Maroto v2).
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nome da escola  │  Tipo do relatório + Período     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: linhas do relatório (posição de estoque ou         │
//	│          consumo do período)                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	apprelatorio "github.com/merendatech/merenda-api/internal/application/relatorio"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ apprelatorio.Renderer = (*MarotoRenderer)(nil)

// MarotoRenderer implementa relatorio.Renderer usando Maroto v2. Grava os
// PDFs gerados em outputDir e devolve o caminho do arquivo.
type MarotoRenderer struct {
	outputDir    string
	escolaRepo   repository.EscolaRepository
	itemRepo     repository.EstoqueItemRepository
	alimentoRepo repository.AlimentoRepository
	consumoRepo  repository.ConsumoRepository
	cardapioRepo repository.CardapioRepository
}

// NewMarotoRenderer constrói o renderizador.
func NewMarotoRenderer(
	outputDir string,
	escolaRepo repository.EscolaRepository,
	itemRepo repository.EstoqueItemRepository,
	alimentoRepo repository.AlimentoRepository,
	consumoRepo repository.ConsumoRepository,
	cardapioRepo repository.CardapioRepository,
) *MarotoRenderer {
	return &MarotoRenderer{
		outputDir:    outputDir,
		escolaRepo:   escolaRepo,
		itemRepo:     itemRepo,
		alimentoRepo: alimentoRepo,
		consumoRepo:  consumoRepo,
		cardapioRepo: cardapioRepo,
	}
}

// Render gera o PDF do relatório e devolve o caminho do arquivo.
func (g *MarotoRenderer) Render(r *entity.Relatorio) (string, error) {
	escolaName := r.EscolaID
	if escola, err := g.escolaRepo.GetByID(r.EscolaID); err == nil && escola != nil {
		escolaName = escola.Name
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(reportTitle(r.Kind), true).
		WithAuthor(escolaName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(r, escolaName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	var err error
	switch r.Kind {
	case entity.RelatorioEstoquePosicao:
		err = g.addEstoqueRows(m, r)
	case entity.RelatorioConsumoResumo:
		err = g.addConsumoRows(m, r)
	default:
		return "", fmt.Errorf("tipo de relatório desconhecido: %s", r.Kind)
	}
	if err != nil {
		return "", err
	}

	doc, err := m.Generate()
	if err != nil {
		return "", fmt.Errorf("pdf: gerar documento: %w", err)
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: criar diretório de saída: %w", err)
	}
	path := filepath.Join(g.outputDir, r.ID+".pdf")
	if err := os.WriteFile(path, doc.GetBytes(), 0o644); err != nil {
		return "", fmt.Errorf("pdf: gravar arquivo: %w", err)
	}
	return path, nil
}

func reportTitle(kind string) string {
	switch kind {
	case entity.RelatorioEstoquePosicao:
		return "Posição de Estoque"
	case entity.RelatorioConsumoResumo:
		return "Resumo de Consumo"
	}
	return "Relatório"
}

// headerRow: nome da escola (esq) e tipo + período (dir).
func headerRow(r *entity.Relatorio, escolaName string) core.Row {
	periodo := fmt.Sprintf("Período: %s a %s",
		r.PeriodStart.Format("02/01/2006"), r.PeriodEnd.Format("02/01/2006"))

	return row.New(16).Add(
		col.New(7).Add(
			text.New(escolaName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Alimentação Escolar", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(reportTitle(r.Kind), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(periodo, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoRenderer) addEstoqueRows(m core.Maroto, r *entity.Relatorio) error {
	items, err := g.itemRepo.ListByEscola(r.EscolaID, 1000, 0)
	if err != nil {
		return fmt.Errorf("pdf: carregar itens de estoque: %w", err)
	}

	m.AddRows(tableHeader(
		headerCell("Alimento", 4, align.Left),
		headerCell("Lote", 2, align.Left),
		headerCell("Qtd.", 2, align.Right),
		headerCell("Valor Unit.", 2, align.Right),
		headerCell("Validade", 2, align.Center),
	))

	total := decimal.Zero
	for _, item := range items {
		name := item.AlimentoID
		if a, err := g.alimentoRepo.GetByID(item.AlimentoID); err == nil && a != nil {
			name = a.Name
		}
		total = total.Add(item.QuantityOnHand.Mul(item.UnitValue))
		m.AddRows(row.New(6).Add(
			bodyCell(name, 4, align.Left),
			bodyCell(item.Lot, 2, align.Left),
			bodyCell(item.QuantityOnHand.String(), 2, align.Right),
			bodyCell("R$ "+item.UnitValue.StringFixed(2), 2, align.Right),
			bodyCell(item.ExpirationDate.Format("02/01/2006"), 2, align.Center),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(8).Add(text.New("VALOR TOTAL EM ESTOQUE:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(text.New("R$ "+total.Round(2).StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
		})),
	))
	return nil
}

func (g *MarotoRenderer) addConsumoRows(m core.Maroto, r *entity.Relatorio) error {
	from, to := r.PeriodStart, r.PeriodEnd
	consumos, err := g.consumoRepo.ListByEscola(r.EscolaID, &from, &to, 1000, 0)
	if err != nil {
		return fmt.Errorf("pdf: carregar consumos: %w", err)
	}

	m.AddRows(tableHeader(
		headerCell("Data", 3, align.Center),
		headerCell("Cardápio", 6, align.Left),
		headerCell("Porções", 3, align.Right),
	))

	total := 0
	for _, c := range consumos {
		cardapioName := c.CardapioID
		if card, err := g.cardapioRepo.GetByID(c.CardapioID); err == nil && card != nil {
			cardapioName = card.Name
		}
		total += c.Servings
		m.AddRows(row.New(6).Add(
			bodyCell(c.Date.Format("02/01/2006"), 3, align.Center),
			bodyCell(cardapioName, 6, align.Left),
			bodyCell(fmt.Sprintf("%d", c.Servings), 3, align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(9).Add(text.New("TOTAL DE PORÇÕES SERVIDAS:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
		})),
		col.New(3).Add(text.New(fmt.Sprintf("%d", total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
		})),
	))
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func tableHeader(cols ...core.Col) core.Row {
	return row.New(8).Add(cols...)
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func bodyCell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}
