package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Get("/login", ShowLoginPage)
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Post("/change-password", ChangePasswordAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Already logged in: send to the role's landing page.
	if tokenString := c.Cookies("jwt_token"); tokenString != "" {
		if claims, err := ValidateJWT(tokenString); err == nil {
			if claims.Role == RoleTeacher {
				return c.Redirect("/teacher")
			}
			return c.Redirect("/student")
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "ログイン - Cocone Attendance",
	}, "")
}

// AuthMiddleware validates the JWT cookie and stores the resolved Identity
// in c.Locals("identity"). Core operations receive the identity explicitly;
// they never read request state themselves.
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	tokenString = c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return unauthorized(c)
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return unauthorized(c)
	}

	c.Locals("identity", &Identity{
		UserID: claims.UserID,
		Name:   claims.Name,
		Role:   claims.Role,
	})
	return c.Next()
}

// RequireRole rejects requests whose identity does not carry the given role,
// before any storage access happens.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if identity == nil {
			return unauthorized(c)
		}
		if identity.Role != role {
			if isAPIRequest(c) {
				return c.Status(403).JSON(fiber.Map{"error": "Forbidden"})
			}
			return c.Redirect("/auth/login")
		}
		return c.Next()
	}
}

// CurrentIdentity returns the identity set by AuthMiddleware, or nil when
// the request is unauthenticated.
func CurrentIdentity(c *fiber.Ctx) *Identity {
	identity, _ := c.Locals("identity").(*Identity)
	return identity
}

func isAPIRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api")
}

func unauthorized(c *fiber.Ctx) error {
	if isAPIRequest(c) {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.Redirect("/auth/login")
}
