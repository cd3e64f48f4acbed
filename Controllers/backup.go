package Controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Monjez/Models"
	"Monjez/middleware"
)

// BackupVersion marks the backup document format.
const BackupVersion = "1.0"

// BackupDocument is the full-dataset JSON backup. Export-then-import
// must reproduce an equivalent dataset, ids included.
type BackupDocument struct {
	Employees   []Models.Employee   `json:"employees"`
	Tasks       []Models.Task       `json:"tasks"`
	Assignments []Models.Assignment `json:"assignments"`
	Logs        []Models.TaskLog    `json:"logs"`
	ExportDate  time.Time           `json:"exportDate"`
	Version     string              `json:"version"`
}

// BackupController handles full-dataset export and restore.
type BackupController struct {
	DB *gorm.DB
}

func NewBackupController(db *gorm.DB) *BackupController {
	return &BackupController{DB: db}
}

// BuildBackup reads the full dataset into a backup document.
func BuildBackup(db *gorm.DB) (*BackupDocument, error) {
	doc := &BackupDocument{ExportDate: time.Now().UTC(), Version: BackupVersion}
	if err := db.Order("id").Find(&doc.Employees).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&doc.Tasks).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&doc.Assignments).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&doc.Logs).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// NormalizeBackup canonicalizes statuses on an imported document and
// rejects values that normalize to nothing known. This is the only
// place legacy localized status strings are accepted. Type and
// approval state must land inside their enums too; a row outside the
// review lifecycle could never be approved or rejected afterward.
func NormalizeBackup(doc *BackupDocument) error {
	for i := range doc.Logs {
		entry := &doc.Logs[i]

		status := Models.NormalizeStatus(entry.Status)
		if !Models.ValidStatus(status) {
			return fmt.Errorf("log %s has unrecognized status %q", entry.ID, entry.Status)
		}
		entry.Status = status

		if entry.TaskType == "" {
			entry.TaskType = Models.TypeExtra
		}
		if !Models.ValidTaskType(entry.TaskType) {
			return fmt.Errorf("log %s has unrecognized type %q", entry.ID, entry.TaskType)
		}

		if entry.ApprovalStatus == "" {
			entry.ApprovalStatus = Models.ApprovalPending
		}
		if !Models.ValidApprovalStatus(entry.ApprovalStatus) {
			return fmt.Errorf("log %s has unrecognized approval state %q", entry.ID, entry.ApprovalStatus)
		}
	}
	return nil
}

// ApplyBackup upserts the document in one transaction. Existing rows
// with matching ids are overwritten, which keeps restores idempotent.
func ApplyBackup(db *gorm.DB, doc *BackupDocument) error {
	upsert := clause.OnConflict{UpdateAll: true}
	// Backups never carry password hashes, so employee restores must
	// leave the stored credential untouched.
	employeeUpsert := clause.OnConflict{
		DoUpdates: clause.AssignmentColumns([]string{"name", "job_title", "active", "role", "permissions", "updated_at"}),
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if len(doc.Employees) > 0 {
			if err := tx.Clauses(employeeUpsert).Create(&doc.Employees).Error; err != nil {
				return err
			}
		}
		if len(doc.Tasks) > 0 {
			if err := tx.Clauses(upsert).Create(&doc.Tasks).Error; err != nil {
				return err
			}
		}
		for i := range doc.Assignments {
			a := doc.Assignments[i]
			if a.ID == 0 {
				// spreadsheet imports carry no edge ids; match on the
				// pair instead so re-imports do not duplicate edges
				err := tx.Where("employee_id = ? AND task_id = ?", a.EmployeeID, a.TaskID).
					FirstOrCreate(&doc.Assignments[i], Models.Assignment{EmployeeID: a.EmployeeID, TaskID: a.TaskID}).Error
				if err != nil {
					return err
				}
				continue
			}
			if err := tx.Clauses(upsert).Create(&doc.Assignments[i]).Error; err != nil {
				return err
			}
		}
		if len(doc.Logs) > 0 {
			if err := tx.Clauses(upsert).Create(&doc.Logs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Export streams the full dataset as a JSON document.
func (ctl *BackupController) Export(c *fiber.Ctx) error {
	doc, err := BuildBackup(ctl.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build backup"})
	}
	if user, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(user, Models.AuditExport, "backup", fmt.Sprintf("%d logs", len(doc.Logs)))
	}
	c.Set("Content-Disposition", `attachment; filename="monjez-backup.json"`)
	return c.JSON(doc)
}

// Import restores a backup document, upserting every collection.
func (ctl *BackupController) Import(c *fiber.Ctx) error {
	var doc BackupDocument
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid backup document"})
	}
	if doc.Version == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Backup document is missing its version"})
	}
	if err := NormalizeBackup(&doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ApplyBackup(ctl.DB, &doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Restore was not confirmed, please retry"})
	}

	if user, ok := middleware.CurrentUser(c); ok {
		Models.RecordAudit(user, Models.AuditImport, "backup",
			fmt.Sprintf("%d employees, %d tasks, %d assignments, %d logs",
				len(doc.Employees), len(doc.Tasks), len(doc.Assignments), len(doc.Logs)))
	}
	return c.JSON(fiber.Map{
		"employees":   len(doc.Employees),
		"tasks":       len(doc.Tasks),
		"assignments": len(doc.Assignments),
		"logs":        len(doc.Logs),
	})
}
