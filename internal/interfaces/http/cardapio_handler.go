package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/application/usecase"
)

// CardapioHandler trata as requisições de cardápios (protegido, por escola).
type CardapioHandler struct {
	uc *usecase.CardapioUseCase
}

// NewCardapioHandler constrói o handler.
func NewCardapioHandler(uc *usecase.CardapioUseCase) *CardapioHandler {
	return &CardapioHandler{uc: uc}
}

// Create godoc
// @Summary      Criar cardápio
// @Tags         cardapios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CardapioRequest  true  "Cardápio com itens e per capita"
// @Success      201   {object}  entity.Cardapio
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cardapios [post]
func (h *CardapioHandler) Create(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var in dto.CardapioRequest
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
// @Summary      Obter cardápio por ID
// @Tags         cardapios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do cardápio"
// @Success      200  {object}  entity.Cardapio
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cardapios/{id} [get]
func (h *CardapioHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetEscolaID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cardápios da escola
// @Tags         cardapios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Cardapio
// @Router       /api/cardapios [get]
func (h *CardapioHandler) List(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros de paginação inválidos")
	}
	out, err := h.uc.List(escolaID, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar cardápio (substitui o conjunto de itens)
// @Tags         cardapios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID do cardápio"
// @Param        body  body  dto.CardapioRequest  true  "Dados a atualizar"
// @Success      200   {object}  entity.Cardapio
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cardapios/{id} [put]
func (h *CardapioHandler) Update(c *fiber.Ctx) error {
	var in dto.CardapioRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Update(GetEscolaID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover cardápio
// @Tags         cardapios
// @Security     Bearer
// @Param        id  path  string  true  "ID do cardápio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cardapios/{id} [delete]
func (h *CardapioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetEscolaID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
