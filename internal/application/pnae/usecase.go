package pnae

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
	"github.com/merendatech/merenda-api/internal/domain/repository"
)

// minimumPercent mínimo legal de compras da agricultura familiar sobre os
// repasses do PNAE (Lei 11.947, art. 14).
var minimumPercent = decimal.NewFromInt(30)

// PNAEUseCase conformidade do programa: repasses federais, percentual de
// agricultura familiar e exportação do arquivo de prestação de contas.
type PNAEUseCase struct {
	repasseRepo   repository.RepassePNAERepository
	licitacaoRepo repository.LicitacaoRepository
	escolaRepo    repository.EscolaRepository
}

// NewPNAEUseCase constrói o caso de uso.
func NewPNAEUseCase(
	repasseRepo repository.RepassePNAERepository,
	licitacaoRepo repository.LicitacaoRepository,
	escolaRepo repository.EscolaRepository,
) *PNAEUseCase {
	return &PNAEUseCase{repasseRepo: repasseRepo, licitacaoRepo: licitacaoRepo, escolaRepo: escolaRepo}
}

// RegisterRepasse registra um repasse federal recebido no exercício.
func (uc *PNAEUseCase) RegisterRepasse(escolaID string, in dto.RepasseRequest) (*entity.RepassePNAE, error) {
	if escolaID == "" || in.Year == 0 || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	r := &entity.RepassePNAE{
		ID:        uuid.New().String(),
		EscolaID:  escolaID,
		Year:      in.Year,
		Reference: in.Reference,
		Amount:    in.Amount,
		Date:      in.Date,
		CreatedAt: time.Now(),
	}
	if err := uc.repasseRepo.Create(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRepasses devolve os repasses do exercício.
func (uc *PNAEUseCase) ListRepasses(escolaID string, year int) ([]*entity.RepassePNAE, error) {
	return uc.repasseRepo.ListByEscolaYear(escolaID, year)
}

// Resumo calcula a conformidade do exercício: percentual das compras de
// agricultura familiar sobre o total de repasses, frente ao mínimo de 30%.
// Sem repasses no exercício não há obrigação a cumprir.
func (uc *PNAEUseCase) Resumo(escolaID string, year int) (*entity.ResumoPNAE, error) {
	if escolaID == "" || year == 0 {
		return nil, domain.ErrInvalidInput
	}
	totalRepasses, err := uc.repasseRepo.TotalByYear(escolaID, year)
	if err != nil {
		return nil, err
	}
	totalCompras, err := uc.licitacaoRepo.TotalComprasByYear(escolaID, year, false)
	if err != nil {
		return nil, err
	}
	agriFamiliar, err := uc.licitacaoRepo.TotalComprasByYear(escolaID, year, true)
	if err != nil {
		return nil, err
	}

	percent := decimal.Zero
	conforme := true
	if totalRepasses.GreaterThan(decimal.Zero) {
		percent = agriFamiliar.Div(totalRepasses).Mul(decimal.NewFromInt(100)).Round(2)
		conforme = percent.GreaterThanOrEqual(minimumPercent)
	}

	return &entity.ResumoPNAE{
		EscolaID:            escolaID,
		Year:                year,
		TotalRepasses:       totalRepasses,
		TotalCompras:        totalCompras,
		ComprasAgriFamiliar: agriFamiliar,
		PercentAgriFamiliar: percent,
		MinimumPercent:      minimumPercent,
		Conforme:            conforme,
	}, nil
}

// ExportXML gera o arquivo de prestação de contas do exercício. O XML não é
// assinado aqui; a assinatura é aplicada no portal federal no envio.
func (uc *PNAEUseCase) ExportXML(escolaID string, year int) ([]byte, error) {
	escola, err := uc.escolaRepo.GetByID(escolaID)
	if err != nil {
		return nil, err
	}
	if escola == nil {
		return nil, domain.ErrNotFound
	}
	resumo, err := uc.Resumo(escolaID, year)
	if err != nil {
		return nil, err
	}
	repasses, err := uc.repasseRepo.ListByEscolaYear(escolaID, year)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("prestacaoContasPNAE")
	root.CreateAttr("exercicio", strconv.Itoa(year))

	esc := root.CreateElement("escola")
	esc.CreateAttr("id", escola.ID)
	esc.CreateAttr("nome", escola.Name)
	esc.CreateAttr("inep", escola.INEPCode)

	reps := root.CreateElement("repasses")
	reps.CreateAttr("total", resumo.TotalRepasses.StringFixed(2))
	for _, r := range repasses {
		rep := reps.CreateElement("repasse")
		rep.CreateAttr("referencia", r.Reference)
		rep.CreateAttr("data", r.Date.Format("2006-01-02"))
		rep.CreateAttr("valor", r.Amount.StringFixed(2))
	}

	compras := root.CreateElement("compras")
	compras.CreateAttr("total", resumo.TotalCompras.StringFixed(2))
	compras.CreateAttr("agriculturaFamiliar", resumo.ComprasAgriFamiliar.StringFixed(2))
	compras.CreateAttr("percentualAgriculturaFamiliar", resumo.PercentAgriFamiliar.StringFixed(2))

	conf := root.CreateElement("conformidade")
	conf.CreateAttr("percentualMinimo", minimumPercent.StringFixed(2))
	if resumo.Conforme {
		conf.CreateAttr("conforme", "sim")
	} else {
		conf.CreateAttr("conforme", "nao")
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
