package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/merendatech/merenda-api/internal/application/dto"
	"github.com/merendatech/merenda-api/pkg/jwt"
)

// Locals keys do principal autenticado no Fiber.
const (
	LocalUserID   = "user_id"
	LocalEscolaID = "escola_id"
	LocalRole     = "role"
	LocalUserName = "user_name"
)

// sessionCookie nome do cookie de sessão aceito como alternativa ao header.
const sessionCookie = "token"

// AuthMiddleware valida o token JWT (header Bearer ou cookie de sessão) e
// carrega o principal em c.Locals. Navegador pedindo HTML é redirecionado
// para /login; clientes de API recebem 401 JSON.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Cookies(sessionCookie)
		}
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "token de sessão requerido")
		}
		principal, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido ou expirado")
		}
		c.Locals(LocalUserID, principal.UserID)
		c.Locals(LocalEscolaID, principal.EscolaID)
		c.Locals(LocalRole, principal.Role)
		c.Locals(LocalUserName, principal.Name)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	if strings.Contains(c.Get("Accept"), "text/html") {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// GetUserID devolve o UserID do contexto (após o middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetEscolaID devolve a escola do principal; vazio para super_admin.
func GetEscolaID(c *fiber.Ctx) string {
	return localString(c, LocalEscolaID)
}

// GetRole devolve o papel do principal.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// ScopeEscolaID devolve a escola efetiva da requisição: a do principal, ou,
// para principal global (super_admin), a passada em ?escola_id=.
func ScopeEscolaID(c *fiber.Ctx) string {
	if escolaID := GetEscolaID(c); escolaID != "" {
		return escolaID
	}
	return c.Query("escola_id")
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
