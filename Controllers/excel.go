package Controllers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"Monjez/Exchange"
	"Monjez/Models"
	"Monjez/middleware"
)

// ExcelController handles spreadsheet export and import of the dataset.
type ExcelController struct {
	DB *gorm.DB
}

func NewExcelController(db *gorm.DB) *ExcelController {
	return &ExcelController{DB: db}
}

// Export streams the dataset as an xlsx workbook.
func (ctl *ExcelController) Export(c *fiber.Ctx) error {
	doc, err := BuildBackup(ctl.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read dataset"})
	}

	workbook, err := Exchange.BuildWorkbook(Exchange.Dataset{
		Employees:   doc.Employees,
		Tasks:       doc.Tasks,
		Assignments: doc.Assignments,
		Logs:        doc.Logs,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write workbook"})
	}

	if user, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(user, Models.AuditExport, "excel", fmt.Sprintf("%d logs", len(doc.Logs)))
	}
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="monjez-export.xlsx"`)
	return c.Send(buf.Bytes())
}

// Import parses an uploaded workbook and upserts its rows.
func (ctl *ExcelController) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An xlsx file upload is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not open uploaded file"})
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Uploaded file is not a valid workbook"})
	}
	defer workbook.Close()

	ds, err := Exchange.ParseWorkbook(workbook)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	doc := BackupDocument{
		Employees:   ds.Employees,
		Tasks:       ds.Tasks,
		Assignments: ds.Assignments,
		Logs:        ds.Logs,
		Version:     BackupVersion,
	}
	if err := ApplyBackup(ctl.DB, &doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Import was not confirmed, please retry"})
	}

	if user, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(user, Models.AuditImport, "excel",
			fmt.Sprintf("%d employees, %d tasks, %d assignments, %d logs",
				len(ds.Employees), len(ds.Tasks), len(ds.Assignments), len(ds.Logs)))
	}
	return c.JSON(fiber.Map{
		"employees":   len(ds.Employees),
		"tasks":       len(ds.Tasks),
		"assignments": len(ds.Assignments),
		"logs":        len(ds.Logs),
	})
}
