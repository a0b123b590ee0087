package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/consumo"
	"github.com/merendatech/merenda-api/internal/application/dto"
)

// ConsumoHandler trata o registro diário de refeições (protegido, por escola).
type ConsumoHandler struct {
	uc *consumo.ConsumoUseCase
}

// NewConsumoHandler constrói o handler.
func NewConsumoHandler(uc *consumo.ConsumoUseCase) *ConsumoHandler {
	return &ConsumoHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar consumo do dia
// @Description  Com debitar_estoque=true, os per capita do cardápio × porções saem do estoque na mesma transação; saldo insuficiente em qualquer ingrediente aborta o registro inteiro.
// @Tags         consumo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumoRequest  true  "Cardápio, data e porções"
// @Success      201   {object}  entity.Consumo
// @Failure      409   {object}  dto.ErrorResponse  "saldo insuficiente"
// @Router       /api/consumos [post]
func (h *ConsumoHandler) Register(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var in dto.ConsumoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Register(c.Context(), escolaID, GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar consumos da escola
// @Tags         consumo
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Data inicial (RFC 3339 ou 2006-01-02)"
// @Param        to    query  string  false  "Data final"
// @Success      200   {array}  entity.Consumo
// @Router       /api/consumos [get]
func (h *ConsumoHandler) List(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parâmetros de paginação inválidos")
	}
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "data inicial inválida")
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "data final inválida")
	}
	out, err := h.uc.List(escolaID, from, to, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery aceita RFC 3339 ou a forma curta 2006-01-02.
func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
