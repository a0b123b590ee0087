package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/internal/domain/rbac"
)

// RequirePermission autoriza a requisição contra a tabela estática de
// permissões: papel ausente é 401, papel sem a permissão é 403. A decisão é
// fail-closed, sem consulta à DB.
func RequirePermission(module, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "MISSING_ROLE", Message: "token sem papel de acesso",
			})
		}
		if !rbac.IsAllowed(role, module, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "acesso negado ao recurso",
			})
		}
		return c.Next()
	}
}
