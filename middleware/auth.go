package middleware

import (
	"Monjez/Models"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SecretKey returns the JWT signing key from the environment.
func SecretKey() []byte {
	if key := os.Getenv("JWT_SECRET"); key != "" {
		return []byte(key)
	}
	return []byte("secret")
}

// Verify authenticates the request from the jwt cookie and, when a
// permission is named, checks the employee holds it. Admins hold every
// permission. The authenticated employee is stored in c.Locals("user").
func Verify(requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies("jwt")
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not Logged In.",
			})
		}

		token, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return SecretKey(), nil
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token claims",
			})
		}

		var user Models.Employee
		result := Models.DB.Where("id = ?", claims.Issuer).First(&user)
		if result.Error != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		if !user.Active {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Account is deactivated",
			})
		}

		c.Locals("user", user)

		if requiredPermission == "" || user.HasPermission(requiredPermission) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Insufficient permissions to access this resource",
		})
	}
}

// CurrentUser returns the employee stored by Verify.
func CurrentUser(c *fiber.Ctx) (Models.Employee, bool) {
	user, ok := c.Locals("user").(Models.Employee)
	return user, ok
}
