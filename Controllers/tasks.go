package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Monjez/Logbook"
	"Monjez/Models"
	"Monjez/middleware"
)

// TaskController handles task and assignment administration.
type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

type TaskRequest struct {
	ID          string `json:"id" validate:"required,max=64"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"`
}

type AssignmentRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	TaskID     string `json:"task_id" validate:"required"`
}

// GetTasks lists all tasks.
func (ctl *TaskController) GetTasks(c *fiber.Ctx) error {
	var tasks []Models.Task
	if err := ctl.DB.Order("id").Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tasks"})
	}
	return c.JSON(tasks)
}

// CreateTask registers a unit of recurring work.
func (ctl *TaskController) CreateTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	var existing Models.Task
	if err := ctl.DB.First(&existing, "id = ?", req.ID).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A task with this id already exists"})
	}

	task := Models.Task{
		ID:          strings.TrimSpace(req.ID),
		Description: req.Description,
		Category:    req.Category,
	}
	if err := ctl.DB.Create(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(actor, Models.AuditCreate, "task:"+task.ID, task.Description)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask edits the task text. Existing log rows keep the snapshot
// taken at their submission time.
func (ctl *TaskController) UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")

	var task Models.Task
	if err := ctl.DB.First(&task, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.ID = id
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	task.Description = req.Description
	task.Category = req.Category
	if err := ctl.DB.Save(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update task"})
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(actor, Models.AuditUpdate, "task:"+task.ID, task.Description)
	}
	return c.JSON(task)
}

// DeleteTask removes a task and its assignment edges.
func (ctl *TaskController) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")

	var task Models.Task
	if err := ctl.DB.First(&task, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&Models.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete task"})
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(actor, Models.AuditDelete, "task:"+id, task.Description)
	}
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}

// GetAssignments lists assignment edges, optionally for one employee.
func (ctl *TaskController) GetAssignments(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.Assignment{})
	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	var assignments []Models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assignments"})
	}
	Logbook.SortAssignments(assignments)
	return c.JSON(assignments)
}

// CreateAssignment links an employee to a task.
func (ctl *TaskController) CreateAssignment(c *fiber.Ctx) error {
	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	var employee Models.Employee
	if err := ctl.DB.First(&employee, "id = ?", req.EmployeeID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	var task Models.Task
	if err := ctl.DB.First(&task, "id = ?", req.TaskID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var existing Models.Assignment
	err := ctl.DB.Where("employee_id = ? AND task_id = ?", req.EmployeeID, req.TaskID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This assignment already exists"})
	}

	assignment := Models.Assignment{EmployeeID: req.EmployeeID, TaskID: req.TaskID}
	if err := ctl.DB.Create(&assignment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assignment"})
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(actor, Models.AuditCreate, "assignment", req.EmployeeID+" -> "+req.TaskID)
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// DeleteAssignment removes an edge.
func (ctl *TaskController) DeleteAssignment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignment ID"})
	}

	var assignment Models.Assignment
	if err := ctl.DB.First(&assignment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}
	if err := ctl.DB.Delete(&assignment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete assignment"})
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(actor, Models.AuditDelete, "assignment", assignment.EmployeeID+" -> "+assignment.TaskID)
	}
	return c.JSON(fiber.Map{"message": "Assignment deleted successfully"})
}

// GetChecklist returns the authenticated employee's ordered daily
// checklist resolved from its current assignments.
func (ctl *TaskController) GetChecklist(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not Logged In."})
	}
	items, err := Logbook.Checklist(Logbook.NewGormStore(ctl.DB), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build checklist"})
	}
	return c.JSON(items)
}
