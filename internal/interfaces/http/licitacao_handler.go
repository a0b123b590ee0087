package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/application/usecase"
)

// LicitacaoHandler trata processos de compra (protegido, por escola).
type LicitacaoHandler struct {
	uc *usecase.LicitacaoUseCase
}

// NewLicitacaoHandler constrói o handler.
func NewLicitacaoHandler(uc *usecase.LicitacaoUseCase) *LicitacaoHandler {
	return &LicitacaoHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir processo de compra
// @Tags         licitacoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LicitacaoRequest  true  "Processo com itens"
// @Success      201   {object}  entity.Licitacao
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/licitacoes [post]
func (h *LicitacaoHandler) Create(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var in dto.LicitacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Create(escolaID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter processo por ID
// @Tags         licitacoes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do processo"
// @Success      200  {object}  entity.Licitacao
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/licitacoes/{id} [get]
func (h *LicitacaoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetEscolaID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar processos da escola
// @Tags         licitacoes
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Filtrar por exercício"
// @Success      200   {array}  entity.Licitacao
// @Router       /api/licitacoes [get]
func (h *LicitacaoHandler) List(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros de paginação inválidos")
	}
	out, err := h.uc.List(escolaID, c.QueryInt("year", 0), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar processo aberto (substitui o conjunto de itens)
// @Tags         licitacoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID do processo"
// @Param        body  body  dto.LicitacaoRequest  true  "Dados a atualizar"
// @Success      200   {object}  entity.Licitacao
// @Failure      409   {object}  dto.ErrorResponse  "processo não está aberto"
// @Router       /api/licitacoes/{id} [put]
func (h *LicitacaoHandler) Update(c *fiber.Ctx) error {
	var in dto.LicitacaoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Update(GetEscolaID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar situação do processo
// @Description  Transições válidas: aberta->homologada|cancelada, homologada->encerrada|cancelada.
// @Tags         licitacoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID do processo"
// @Param        body  body  dto.LicitacaoStatusRequest  true  "Nova situação"
// @Success      200   {object}  entity.Licitacao
// @Failure      409   {object}  dto.ErrorResponse  "transição inválida"
// @Router       /api/licitacoes/{id}/status [patch]
func (h *LicitacaoHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.LicitacaoStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.UpdateStatus(GetEscolaID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover processo aberto
// @Tags         licitacoes
// @Security     Bearer
// @Param        id  path  string  true  "ID do processo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "processo não está aberto"
// @Router       /api/licitacoes/{id} [delete]
func (h *LicitacaoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetEscolaID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
