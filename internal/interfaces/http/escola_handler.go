package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/application/usecase"
)

// EscolaHandler trata as requisições de escolas (protegido).
type EscolaHandler struct {
	uc *usecase.EscolaUseCase
}

// NewEscolaHandler constrói o handler.
func NewEscolaHandler(uc *usecase.EscolaUseCase) *EscolaHandler {
	return &EscolaHandler{uc: uc}
}

// Create godoc
// @Summary      Criar escola
// @Tags         escolas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EscolaRequest  true  "Dados da escola"
// @Success      201   {object}  entity.Escola
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/escolas [post]
func (h *EscolaHandler) Create(c *fiber.Ctx) error {
	var in dto.EscolaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter escola por ID
// @Tags         escolas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da escola"
// @Success      200  {object}  entity.Escola
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/escolas/{id} [get]
func (h *EscolaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar escolas
// @Tags         escolas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Escola
// @Router       /api/escolas [get]
func (h *EscolaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros de paginação inválidos")
	}
	out, err := h.uc.List(page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar escola
// @Tags         escolas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID da escola"
// @Param        body  body  dto.EscolaRequest  true  "Dados a atualizar"
// @Success      200   {object}  entity.Escola
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/escolas/{id} [put]
func (h *EscolaHandler) Update(c *fiber.Ctx) error {
	var in dto.EscolaRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desativar escola (exclusão lógica)
// @Tags         escolas
// @Security     Bearer
// @Param        id  path  string  true  "ID da escola"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/escolas/{id} [delete]
func (h *EscolaHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
