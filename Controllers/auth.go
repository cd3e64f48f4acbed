package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"Monjez/Models"
	"Monjez/middleware"
)

const tokenLifetime = 24 * time.Hour

// LoginRequest carries the employee id and password credentials.
type LoginRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an employee and sets the jwt cookie.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	var user Models.Employee
	if err := Models.DB.First(&user, "id = ?", req.ID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Models.RecordAudit(user, Models.AuditLoginFailed, "auth", "wrong password")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if !user.Active {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is deactivated"})
	}

	claims := jwt.RegisteredClaims{
		Issuer:    user.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.SecretKey())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not issue token"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
	})

	Models.RecordAudit(user, Models.AuditLogin, "auth", "")
	return c.JSON(fiber.Map{
		"id":          user.ID,
		"name":        user.Name,
		"role":        user.Role,
		"permissions": user.PermissionSlice(),
	})
}

// Logout clears the jwt cookie.
func Logout(c *fiber.Ctx) error {
	if user, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(user, Models.AuditLogout, "auth", "")
	}
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// CurrentUser returns the authenticated employee.
func CurrentUser(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}
	return c.JSON(user)
}

// ValidateToken reports whether the jwt cookie is still good.
func ValidateToken(c *fiber.Ctx) error {
	cookie := c.Cookies("jwt")
	if cookie == "" {
		return c.JSON(fiber.Map{"valid": false})
	}
	_, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return middleware.SecretKey(), nil
	})
	return c.JSON(fiber.Map{"valid": err == nil})
}
