package pnae_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merendatech/merenda-api/internal/application/dto"
	apppnae "github.com/merendatech/merenda-api/internal/application/pnae"
	"github.com/merendatech/merenda-api/internal/domain"
	"github.com/merendatech/merenda-api/internal/domain/entity"
)

type fakeRepasseRepo struct {
	repasses []*entity.RepassePNAE
}

func (r *fakeRepasseRepo) Create(rep *entity.RepassePNAE) error {
	cp := *rep
	r.repasses = append(r.repasses, &cp)
	return nil
}

func (r *fakeRepasseRepo) ListByEscolaYear(escolaID string, year int) ([]*entity.RepassePNAE, error) {
	var out []*entity.RepassePNAE
	for _, rep := range r.repasses {
		if rep.EscolaID == escolaID && rep.Year == year {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (r *fakeRepasseRepo) TotalByYear(escolaID string, year int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rep := range r.repasses {
		if rep.EscolaID == escolaID && rep.Year == year {
			total = total.Add(rep.Amount)
		}
	}
	return total, nil
}

// fakeComprasRepo responde só TotalComprasByYear; o resto do porto de
// licitações não é tocado pelo caso de uso de conformidade.
type fakeComprasRepo struct {
	total        decimal.Decimal
	agriFamiliar decimal.Decimal
}

func (r *fakeComprasRepo) Create(*entity.Licitacao) error            { return nil }
func (r *fakeComprasRepo) GetByID(string) (*entity.Licitacao, error) { return nil, nil }
func (r *fakeComprasRepo) Update(*entity.Licitacao) error            { return nil }
func (r *fakeComprasRepo) UpdateStatus(string, string) error         { return nil }
func (r *fakeComprasRepo) Delete(string) error                       { return nil }

func (r *fakeComprasRepo) ListByEscola(string, int, int, int) ([]*entity.Licitacao, error) {
	return nil, nil
}

func (r *fakeComprasRepo) TotalComprasByYear(escolaID string, year int, familyOnly bool) (decimal.Decimal, error) {
	if familyOnly {
		return r.agriFamiliar, nil
	}
	return r.total, nil
}

type fakeEscolaRepo struct {
	escola *entity.Escola
}

func (r *fakeEscolaRepo) Create(*entity.Escola) error               { return nil }
func (r *fakeEscolaRepo) GetByID(id string) (*entity.Escola, error) { return r.escola, nil }
func (r *fakeEscolaRepo) Update(*entity.Escola) error               { return nil }
func (r *fakeEscolaRepo) List(int, int) ([]*entity.Escola, error)   { return nil, nil }
func (r *fakeEscolaRepo) Deactivate(string) error                   { return nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUC(repasses *fakeRepasseRepo, compras *fakeComprasRepo) *apppnae.PNAEUseCase {
	return apppnae.NewPNAEUseCase(repasses, compras, &fakeEscolaRepo{escola: &entity.Escola{
		ID:       "escola-1",
		Name:     "EMEF Paulo Freire",
		INEPCode: "35123456",
		Active:   true,
	}})
}

func TestResumo_AbaixoDoMinimoNaoConforme(t *testing.T) {
	repasses := &fakeRepasseRepo{}
	require.NoError(t, repasses.Create(&entity.RepassePNAE{
		ID: "rep-1", EscolaID: "escola-1", Year: 2026, Amount: dec("10000.00"),
	}))
	compras := &fakeComprasRepo{total: dec("8000.00"), agriFamiliar: dec("2500.00")}

	resumo, err := newUC(repasses, compras).Resumo("escola-1", 2026)
	require.NoError(t, err)

	assert.True(t, resumo.PercentAgriFamiliar.Equal(dec("25")),
		"25%% esperado, veio %s", resumo.PercentAgriFamiliar)
	assert.False(t, resumo.Conforme)
}

func TestResumo_ExatamenteTrintaPorCentoConforme(t *testing.T) {
	repasses := &fakeRepasseRepo{}
	require.NoError(t, repasses.Create(&entity.RepassePNAE{
		ID: "rep-1", EscolaID: "escola-1", Year: 2026, Amount: dec("10000.00"),
	}))
	compras := &fakeComprasRepo{total: dec("9000.00"), agriFamiliar: dec("3000.00")}

	resumo, err := newUC(repasses, compras).Resumo("escola-1", 2026)
	require.NoError(t, err)

	assert.True(t, resumo.PercentAgriFamiliar.Equal(dec("30")))
	assert.True(t, resumo.Conforme, "o limite de 30%% conta como conforme")
}

// Exercício sem repasse não tem obrigação a cumprir.
func TestResumo_SemRepassesConforme(t *testing.T) {
	compras := &fakeComprasRepo{total: dec("500.00"), agriFamiliar: decimal.Zero}

	resumo, err := newUC(&fakeRepasseRepo{}, compras).Resumo("escola-1", 2026)
	require.NoError(t, err)

	assert.True(t, resumo.PercentAgriFamiliar.IsZero())
	assert.True(t, resumo.Conforme)
}

func TestRegisterRepasse_ValorNaoPositivoRejeitado(t *testing.T) {
	uc := newUC(&fakeRepasseRepo{}, &fakeComprasRepo{})
	_, err := uc.RegisterRepasse("escola-1", dto.RepasseRequest{
		Year: 2026, Reference: "1ª parcela", Amount: decimal.Zero,
		Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportXML_EstruturaEValores(t *testing.T) {
	repasses := &fakeRepasseRepo{}
	require.NoError(t, repasses.Create(&entity.RepassePNAE{
		ID: "rep-1", EscolaID: "escola-1", Year: 2026, Reference: "1ª parcela",
		Amount: dec("6000.00"), Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, repasses.Create(&entity.RepassePNAE{
		ID: "rep-2", EscolaID: "escola-1", Year: 2026, Reference: "2ª parcela",
		Amount: dec("4000.00"), Date: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	}))
	compras := &fakeComprasRepo{total: dec("9000.00"), agriFamiliar: dec("3600.00")}

	payload, err := newUC(repasses, compras).ExportXML("escola-1", 2026)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(payload))

	root := doc.SelectElement("prestacaoContasPNAE")
	require.NotNil(t, root)
	assert.Equal(t, "2026", root.SelectAttrValue("exercicio", ""))

	escola := root.SelectElement("escola")
	require.NotNil(t, escola)
	assert.Equal(t, "EMEF Paulo Freire", escola.SelectAttrValue("nome", ""))
	assert.Equal(t, "35123456", escola.SelectAttrValue("inep", ""))

	reps := root.SelectElement("repasses")
	require.NotNil(t, reps)
	assert.Equal(t, "10000.00", reps.SelectAttrValue("total", ""))
	assert.Len(t, reps.SelectElements("repasse"), 2)
	assert.Equal(t, "2026-02-10", reps.SelectElements("repasse")[0].SelectAttrValue("data", ""))

	comprasEl := root.SelectElement("compras")
	require.NotNil(t, comprasEl)
	assert.Equal(t, "9000.00", comprasEl.SelectAttrValue("total", ""))
	assert.Equal(t, "3600.00", comprasEl.SelectAttrValue("agriculturaFamiliar", ""))
	assert.Equal(t, "36.00", comprasEl.SelectAttrValue("percentualAgriculturaFamiliar", ""))

	conf := root.SelectElement("conformidade")
	require.NotNil(t, conf)
	assert.Equal(t, "sim", conf.SelectAttrValue("conforme", ""))
}
