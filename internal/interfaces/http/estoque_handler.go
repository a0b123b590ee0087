package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/application/estoque"
	"github.com/merendatech/merenda-api/internal/domain/entity"
)

// EstoqueHandler trata itens de estoque e o livro de movimentos (protegido).
type EstoqueHandler struct {
	itens     *estoque.ItensUseCase
	movimento *estoque.MovimentoUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(itens *estoque.ItensUseCase, movimento *estoque.MovimentoUseCase) *EstoqueHandler {
	return &EstoqueHandler{itens: itens, movimento: movimento}
}

// CreateItem godoc
// @Summary      Criar item de estoque (alimento + lote)
// @Description  O item nasce com quantidade zero; o saldo inicial entra como movimento de entrada.
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EstoqueItemRequest  true  "Dados do item"
// @Success      201   {object}  entity.EstoqueItem
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/estoque/itens [post]
func (h *EstoqueHandler) CreateItem(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var in dto.EstoqueItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.itens.Create(escolaID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItem godoc
// @Summary      Obter item de estoque por ID
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do item"
// @Success      200  {object}  entity.EstoqueItem
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estoque/itens/{id} [get]
func (h *EstoqueHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.itens.GetByID(GetEscolaID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      Listar itens de estoque da escola
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.EstoqueItem
// @Router       /api/estoque/itens [get]
func (h *EstoqueHandler) ListItems(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros de paginação inválidos")
	}
	out, err := h.itens.List(escolaID, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Atualizar metadados do item (mínimo, validade, lote)
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID do item"
// @Param        body  body  dto.EstoqueItemRequest  true  "Dados a atualizar"
// @Success      200   {object}  entity.EstoqueItem
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/estoque/itens/{id} [put]
func (h *EstoqueHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.EstoqueItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.itens.Update(GetEscolaID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Remover item de estoque zerado
// @Tags         estoque
// @Security     Bearer
// @Param        id  path  string  true  "ID do item"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "item com saldo"
// @Router       /api/estoque/itens/{id} [delete]
func (h *EstoqueHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.itens.Delete(GetEscolaID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterMovement godoc
// @Summary      Registrar movimento no livro (entrada, saída ou ajuste)
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID do item"
// @Param        body  body  dto.MovimentoRequest  true  "kind, quantity, unit_value (opcional)"
// @Success      201   {object}  dto.MovimentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "saldo insuficiente"
// @Router       /api/estoque/itens/{id}/movimentos [post]
func (h *EstoqueHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.MovimentoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	result, err := h.movimento.ApplyMovement(c.Context(), estoque.MovimentoInput{
		EscolaID:          GetEscolaID(c),
		ActorID:           GetUserID(c),
		EstoqueItemID:     c.Params("id"),
		Kind:              in.Kind,
		Quantity:          in.Quantity,
		UnitValue:         in.UnitValue,
		Reason:            in.Reason,
		ReferenceDocument: in.ReferenceDocument,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovimentoResponse{
		Movement:    toMovimentoDTO(result.Movement),
		NewQuantity: result.NewQuantity,
	})
}

// ListMovements godoc
// @Summary      Histórico de movimentos do item
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do item"
// @Success      200  {array}  dto.MovimentoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estoque/itens/{id}/movimentos [get]
func (h *EstoqueHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros de paginação inválidos")
	}
	movements, err := h.itens.ListMovements(GetEscolaID(c), c.Params("id"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.MovimentoDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovimentoDTO(m))
	}
	return c.JSON(out)
}

func toMovimentoDTO(m *entity.MovimentoEstoque) dto.MovimentoDTO {
	return dto.MovimentoDTO{
		ID:                m.ID,
		EstoqueItemID:     m.EstoqueItemID,
		Kind:              m.Kind,
		Quantity:          m.Quantity,
		UnitValue:         m.UnitValue,
		TotalValue:        m.TotalValue,
		Reason:            m.Reason,
		ReferenceDocument: m.ReferenceDocument,
		ActorID:           m.ActorID,
		CreatedAt:         m.CreatedAt,
	}
}
