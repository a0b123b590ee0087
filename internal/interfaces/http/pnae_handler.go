package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/application/pnae"
	"github.com/merendatech/merenda-api/internal/domain/entity"
)

// PNAEHandler trata repasses e a prestação de contas do PNAE.
type PNAEHandler struct {
	uc *pnae.PNAEUseCase
}

// NewPNAEHandler constrói o handler.
func NewPNAEHandler(uc *pnae.PNAEUseCase) *PNAEHandler {
	return &PNAEHandler{uc: uc}
}

func yearQuery(c *fiber.Ctx) int {
	return c.QueryInt("year", time.Now().Year())
}

// RegisterRepasse godoc
// @Summary      Registrar repasse federal
// @Tags         pnae
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RepasseRequest  true  "Exercício, parcela, valor e data"
// @Success      201   {object}  entity.RepassePNAE
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pnae/repasses [post]
func (h *PNAEHandler) RegisterRepasse(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var in dto.RepasseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.RegisterRepasse(escolaID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRepasses godoc
// @Summary      Listar repasses do exercício
// @Tags         pnae
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Exercício (padrão: ano corrente)"
// @Success      200   {array}  entity.RepassePNAE
// @Router       /api/pnae/repasses [get]
func (h *PNAEHandler) ListRepasses(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListRepasses(escolaID, yearQuery(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Resumo godoc
// @Summary      Resumo de conformidade do exercício
// @Description  Percentual de compras da agricultura familiar sobre os repasses, contra o mínimo legal de 30% (Lei 11.947, art. 14).
// @Tags         pnae
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Exercício (padrão: ano corrente)"
// @Success      200   {object}  dto.ResumoPNAEResponse
// @Router       /api/pnae/resumo [get]
func (h *PNAEHandler) Resumo(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	resumo, err := h.uc.Resumo(escolaID, yearQuery(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toResumoResponse(resumo))
}

// ExportXML godoc
// @Summary      Exportar o XML de prestação de contas
// @Tags         pnae
// @Security     Bearer
// @Produce      application/xml
// @Param        year  query  int  false  "Exercício (padrão: ano corrente)"
// @Success      200   {string}  string  "documento XML"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pnae/export [get]
func (h *PNAEHandler) ExportXML(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	doc, err := h.uc.ExportXML(escolaID, yearQuery(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(doc)
}

func toResumoResponse(r *entity.ResumoPNAE) dto.ResumoPNAEResponse {
	return dto.ResumoPNAEResponse{
		EscolaID:            r.EscolaID,
		Year:                r.Year,
		TotalRepasses:       r.TotalRepasses,
		TotalCompras:        r.TotalCompras,
		ComprasAgriFamiliar: r.ComprasAgriFamiliar,
		PercentAgriFamiliar: r.PercentAgriFamiliar,
		MinimumPercent:      r.MinimumPercent,
		Conforme:            r.Conforme,
	}
}
