package Controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"Monjez/Models"
	"Monjez/middleware"
)

// EmployeeController handles administrator CRUD over accounts.
type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

type EmployeeRequest struct {
	ID          string   `json:"id" validate:"required,max=64"`
	Name        string   `json:"name" validate:"required"`
	JobTitle    string   `json:"job_title"`
	Active      *bool    `json:"active"`
	Role        string   `json:"role" validate:"omitempty,oneof=Admin User"`
	Permissions []string `json:"permissions" validate:"dive,oneof=view_dashboard log_tasks view_reports manage_system"`
	Password    string   `json:"password" validate:"omitempty,min=8"`
}

// GetEmployees lists all accounts.
func (ctl *EmployeeController) GetEmployees(c *fiber.Ctx) error {
	var employees []Models.Employee
	if err := ctl.DB.Order("id").Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve employees"})
	}
	return c.JSON(employees)
}

// CreateEmployee registers a new account. Only administrators create
// accounts; employees never self-register.
func (ctl *EmployeeController) CreateEmployee(c *fiber.Ctx) error {
	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A password is required"})
	}

	var existing Models.Employee
	if err := ctl.DB.First(&existing, "id = ?", req.ID).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An employee with this id already exists"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	role := req.Role
	if role == "" {
		role = Models.RoleUser
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	employee := Models.Employee{
		ID:          strings.TrimSpace(req.ID),
		Name:        req.Name,
		JobTitle:    req.JobTitle,
		Active:      active,
		Role:        role,
		Permissions: Models.PermissionList(req.Permissions...),
		Password:    string(hash),
	}
	if err := ctl.DB.Create(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee"})
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(actor, Models.AuditCreate, "employee:"+employee.ID, employee.Name)
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

// UpdateEmployee edits an account; a new password re-hashes.
func (ctl *EmployeeController) UpdateEmployee(c *fiber.Ctx) error {
	id := c.Params("id")

	var employee Models.Employee
	if err := ctl.DB.First(&employee, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	var req EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.ID = id
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	employee.Name = req.Name
	employee.JobTitle = req.JobTitle
	if req.Role != "" {
		employee.Role = req.Role
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}
	if req.Permissions != nil {
		employee.Permissions = Models.PermissionList(req.Permissions...)
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}
		employee.Password = string(hash)
	}

	if err := ctl.DB.Save(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update employee"})
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(actor, Models.AuditUpdate, "employee:"+employee.ID, employee.Name)
	}
	return c.JSON(employee)
}

// DeleteEmployee removes an account and its assignment edges. Logs are
// kept: they carry their own description snapshots.
func (ctl *EmployeeController) DeleteEmployee(c *fiber.Ctx) error {
	id := c.Params("id")

	var employee Models.Employee
	if err := ctl.DB.First(&employee, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	if actor, ok := middleware.CurrentUser(c); ok && actor.ID == employee.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot delete your own account"})
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&Models.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&employee).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete employee"})
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(actor, Models.AuditDelete, "employee:"+id, employee.Name)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted successfully"})
}
