package Controllers

import (
	"github.com/gofiber/fiber/v2"

	"Monjez/Assistant"
)

// AssistantController proxies automation-suggestion requests to the
// configured AI service.
type AssistantController struct {
	Client *Assistant.Client
}

func NewAssistantController() *AssistantController {
	return &AssistantController{Client: Assistant.NewClientFromEnv()}
}

type SuggestRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	Image       string `json:"image"`
}

// Suggest returns structured automation advice for a task.
func (ctl *AssistantController) Suggest(c *fiber.Ctx) error {
	if !ctl.Client.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Assistant service is not configured"})
	}

	var req SuggestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	suggestion, err := ctl.Client.Suggest(Assistant.Request{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		Image:       req.Image,
	})
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Assistant request failed, please retry"})
	}
	return c.JSON(suggestion)
}
