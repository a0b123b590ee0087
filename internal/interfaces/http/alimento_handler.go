package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/application/usecase"
)

// AlimentoHandler trata as requisições do catálogo de alimentos (protegido).
type AlimentoHandler struct {
	uc *usecase.AlimentoUseCase
}

// NewAlimentoHandler constrói o handler.
func NewAlimentoHandler(uc *usecase.AlimentoUseCase) *AlimentoHandler {
	return &AlimentoHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar alimento
// @Tags         alimentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AlimentoRequest  true  "Dados do alimento"
// @Success      201   {object}  entity.Alimento
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/alimentos [post]
func (h *AlimentoHandler) Create(c *fiber.Ctx) error {
	var in dto.AlimentoRequest
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
// @Summary      Obter alimento por ID
// @Tags         alimentos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do alimento"
// @Success      200  {object}  entity.Alimento
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alimentos/{id} [get]
func (h *AlimentoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar alimentos
// @Description  search é insensível a acentos: "Feijão" encontra "feijao".
// @Tags         alimentos
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Filtro por nome"
// @Success      200     {array}  entity.Alimento
// @Router       /api/alimentos [get]
func (h *AlimentoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros de paginação inválidos")
	}
	out, err := h.uc.List(c.Query("search"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar alimento
// @Tags         alimentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID do alimento"
// @Param        body  body  dto.AlimentoRequest  true  "Dados a atualizar"
// @Success      200   {object}  entity.Alimento
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/alimentos/{id} [put]
func (h *AlimentoHandler) Update(c *fiber.Ctx) error {
	var in dto.AlimentoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover alimento
// @Tags         alimentos
// @Security     Bearer
// @Param        id  path  string  true  "ID do alimento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alimentos/{id} [delete]
func (h *AlimentoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
