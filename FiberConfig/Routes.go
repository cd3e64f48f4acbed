package FiberConfig

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"Monjez/Controllers"
	"Monjez/Models"
	"Monjez/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	employeeController := Controllers.NewEmployeeController(db)
	taskController := Controllers.NewTaskController(db)
	logController := Controllers.NewLogController(db)
	approvalController := Controllers.NewApprovalController(db)
	reportController := Controllers.NewReportController(db)
	announcementController := Controllers.NewAnnouncementController(db)
	backupController := Controllers.NewBackupController(db)
	excelController := Controllers.NewExcelController(db)
	auditController := Controllers.NewAuditController(db)
	assistantController := Controllers.NewAssistantController()

	api := app.Group("/api")

	// Session routes
	api.Post("/login", Controllers.Login)
	api.Post("/logout", Controllers.Logout)
	api.Get("/me", middleware.Verify(""), Controllers.CurrentUser)
	api.Get("/validate-token", Controllers.ValidateToken)

	// Employee administration
	employees := api.Group("/employees", middleware.Verify(Models.PermManageSystem))
	employees.Get("/", employeeController.GetEmployees)
	employees.Post("/", employeeController.CreateEmployee)
	employees.Put("/:id", employeeController.UpdateEmployee)
	employees.Delete("/:id", employeeController.DeleteEmployee)

	// Task catalog and assignments
	tasks := api.Group("/tasks", middleware.Verify(Models.PermManageSystem))
	tasks.Get("/", taskController.GetTasks)
	tasks.Post("/", taskController.CreateTask)
	tasks.Put("/:id", taskController.UpdateTask)
	tasks.Delete("/:id", taskController.DeleteTask)

	assignments := api.Group("/assignments", middleware.Verify(Models.PermManageSystem))
	assignments.Get("/", taskController.GetAssignments)
	assignments.Post("/", taskController.CreateAssignment)
	assignments.Delete("/:id", taskController.DeleteAssignment)

	// Daily submission. Registered before the reviewer group: Fiber
	// group middleware is a prefix Use, so every owner-facing /logs
	// route must sit earlier in the stack.
	api.Get("/checklist", middleware.Verify(Models.PermLogTasks), taskController.GetChecklist)
	api.Post("/logs/submit", middleware.Verify(Models.PermLogTasks), logController.Submit)
	api.Post("/logs/leave", middleware.Verify(Models.PermLogTasks), logController.SubmitLeave)
	api.Get("/logs/mine", middleware.Verify(Models.PermLogTasks), logController.GetMyLogs)

	// The owner acknowledges a rejection, not the reviewer
	api.Post("/logs/:id/commit", middleware.Verify(Models.PermLogTasks), approvalController.CommitLog)

	// Review. Raw rows across all employees are reviewer material;
	// view_reports only unlocks the aggregated summary.
	logs := api.Group("/logs", middleware.Verify(Models.PermManageSystem))
	logs.Get("/", logController.GetLogs)
	logs.Post("/:id/approve", approvalController.ApproveLog)
	logs.Post("/approve-all", approvalController.BulkApprove)
	logs.Post("/:id/reject", approvalController.RejectLog)
	logs.Delete("/:id", approvalController.DeleteLog)

	api.Get("/reports/summary", middleware.Verify(Models.PermViewReports), reportController.GetSummary)

	// Announcements
	announcements := api.Group("/announcements", middleware.Verify(Models.PermViewDashboard))
	announcements.Get("/", announcementController.GetAnnouncements)
	announcements.Post("/", middleware.Verify(Models.PermManageSystem), announcementController.CreateAnnouncement)
	announcements.Delete("/:id", middleware.Verify(Models.PermManageSystem), announcementController.DeleteAnnouncement)
	announcements.Post("/:id/like", announcementController.ToggleLike)
	announcements.Post("/:id/replies", announcementController.AddReply)

	// Backup and spreadsheet exchange
	backup := api.Group("/backup", middleware.Verify(Models.PermManageSystem))
	backup.Get("/export", backupController.Export)
	backup.Post("/import", backupController.Import)

	excel := api.Group("/excel", middleware.Verify(Models.PermManageSystem))
	excel.Get("/export", excelController.Export)
	excel.Post("/import", excelController.Import)

	api.Get("/audit", middleware.Verify(Models.PermManageSystem), auditController.GetAuditLog)

	api.Post("/assistant/suggest", middleware.Verify(Models.PermLogTasks), assistantController.Suggest)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	if err := app.Listen(":" + port); err != nil {
		panic(err)
	}
}
