package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/usecase"
)

// DashboardHandler trata o painel de agregados por escola (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Agregados da escola
// @Description  Itens abaixo do mínimo, itens vencendo em 30 dias, refeições servidas no mês e valor total em estoque. Resultado cacheado quando o Redis está configurado.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	escolaID, err := requireScope(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Summary(c.Context(), escolaID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
