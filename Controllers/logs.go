package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Monjez/Logbook"
	"Monjez/Models"
	"Monjez/middleware"
)

// LogController exposes the daily submission engine and log queries.
type LogController struct {
	DB     *gorm.DB
	Engine *Logbook.Engine
}

func NewLogController(db *gorm.DB) *LogController {
	return &LogController{DB: db, Engine: Logbook.NewEngine(Logbook.NewGormStore(db))}
}

type SubmitRequest struct {
	Date       string            `json:"date" validate:"required"`
	Decisions  map[string]string `json:"decisions"`
	ExtraTasks []string          `json:"extra_tasks"`
}

type LeaveRequest struct {
	Date      string `json:"date" validate:"required"`
	LeaveType string `json:"leave_type" validate:"required"`
}

// Submit records the current employee's daily log batch for one date.
func (ctl *LogController) Submit(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	logs, err := ctl.Engine.Submit(Logbook.Submission{
		EmployeeID: user.ID,
		Date:       req.Date,
		Decisions:  req.Decisions,
		ExtraTasks: req.ExtraTasks,
	})
	if err != nil {
		return submissionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(logs)
}

// SubmitLeave records the current employee absent for one date.
func (ctl *LogController) SubmitLeave(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	var req LeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	entry, err := ctl.Engine.SubmitLeave(user.ID, req.Date, req.LeaveType)
	if err != nil {
		return submissionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetMyLogs lists the current employee's own log rows, newest first.
func (ctl *LogController) GetMyLogs(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}

	query := ctl.DB.Where("employee_id = ?", user.ID)
	query = applyLogFilters(query, c)

	var logs []Models.TaskLog
	if err := query.Order("log_date DESC, id").Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve logs"})
	}
	return c.JSON(logs)
}

// GetLogs lists all log rows, filterable, for reviewers.
func (ctl *LogController) GetLogs(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.TaskLog{})
	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	query = applyLogFilters(query, c)

	var logs []Models.TaskLog
	if err := query.Order("log_date DESC, employee_id, id").Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve logs"})
	}
	return c.JSON(logs)
}

// applyLogFilters narrows a log query by the shared query params.
func applyLogFilters(query *gorm.DB, c *fiber.Ctx) *gorm.DB {
	if date := c.Query("date"); date != "" {
		query = query.Where("log_date LIKE ?", date+"%")
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("log_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("log_date <= ?", to+"T23:59:59Z")
	}
	if approval := c.Query("approval_status"); approval != "" {
		query = query.Where("approval_status = ?", approval)
	}
	if taskType := c.Query("task_type"); taskType != "" {
		query = query.Where("task_type = ?", taskType)
	}
	return query
}

// submissionError maps engine errors onto HTTP responses: duplicates
// conflict, other validation failures are bad requests, everything else
// is a retryable server fault.
func submissionError(c *fiber.Ctx, err error) error {
	if ve := Logbook.AsValidation(err); ve != nil {
		status := fiber.StatusBadRequest
		if ve.Code == Logbook.CodeDuplicate {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"error": ve.Reason, "code": ve.Code})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Submission was not confirmed, please retry",
	})
}
