package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/application/relatorio"
	"github.com/merendatech/merenda-api/internal/domain/entity"
)

// RelatorioHandler trata solicitações de relatório em segundo plano.
type RelatorioHandler struct {
	uc *relatorio.RelatorioUseCase
}

// NewRelatorioHandler constrói o handler.
func NewRelatorioHandler(uc *relatorio.RelatorioUseCase) *RelatorioHandler {
	return &RelatorioHandler{uc: uc}
}

// Request godoc
// @Summary      Solicitar relatório (processamento assíncrono)
// @Description  A solicitação entra na fila como pendente; acompanhe pelo endpoint de consulta e baixe o PDF quando concluído.
// @Tags         relatorios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RelatorioRequest  true  "Tipo e período"
// @Success      202   {object}  dto.RelatorioResponse
// @Failure      409   {object}  dto.ErrorResponse  "fila cheia"
// @Router       /api/relatorios [post]
func (h *RelatorioHandler) Request(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var in dto.RelatorioRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	r, err := h.uc.Request(escolaID, GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(toRelatorioResponse(r))
}

// GetByID godoc
// @Summary      Consultar situação da solicitação
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da solicitação"
// @Success      200  {object}  dto.RelatorioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/relatorios/{id} [get]
func (h *RelatorioHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.uc.GetByID(GetEscolaID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toRelatorioResponse(r))
}

// List godoc
// @Summary      Listar solicitações da escola
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RelatorioResponse
// @Router       /api/relatorios [get]
func (h *RelatorioHandler) List(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros de paginação inválidos")
	}
	rs, err := h.uc.List(escolaID, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.RelatorioResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRelatorioResponse(r))
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Baixar o PDF de um relatório concluído
// @Tags         relatorios
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da solicitação"
// @Success      200  {file}  file
// @Failure      409  {object}  dto.ErrorResponse  "relatório ainda não concluído"
// @Router       /api/relatorios/{id}/download [get]
func (h *RelatorioHandler) Download(c *fiber.Ctx) error {
	r, err := h.uc.GetByID(GetEscolaID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if r.Status != entity.RelatorioConcluido || r.FilePath == "" {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "REPORT_NOT_READY",
			Message: "relatório ainda não concluído",
		})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.SendFile(r.FilePath)
}

func toRelatorioResponse(r *entity.Relatorio) dto.RelatorioResponse {
	return dto.RelatorioResponse{
		ID:           r.ID,
		Kind:         r.Kind,
		Status:       r.Status,
		FilePath:     r.FilePath,
		ErrorMessage: r.ErrorMessage,
		PeriodStart:  r.PeriodStart,
		PeriodEnd:    r.PeriodEnd,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
