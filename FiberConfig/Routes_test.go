package FiberConfig

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Monjez/Models"
	"Monjez/middleware"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&Models.Employee{},
		&Models.Task{},
		&Models.Assignment{},
		&Models.TaskLog{},
		&Models.SystemAuditLog{},
		&Models.Announcement{},
		&Models.AnnouncementReply{},
	))
	Models.DB = db

	employees := []Models.Employee{
		{ID: "viewer", Name: "Viewer", Role: Models.RoleUser, Active: true,
			Permissions: Models.PermissionList(Models.PermViewReports)},
		{ID: "manager", Name: "Manager", Role: Models.RoleUser, Active: true,
			Permissions: Models.PermissionList(Models.PermManageSystem)},
		{ID: "worker", Name: "Worker", Role: Models.RoleUser, Active: true,
			Permissions: Models.PermissionList(Models.PermLogTasks)},
	}
	assert.NoError(t, db.Create(&employees).Error)

	app := fiber.New()
	SetupRoutes(app, db)
	return app, db
}

func sessionCookie(t *testing.T, employeeID string) *http.Cookie {
	claims := jwt.RegisteredClaims{
		Issuer:    employeeID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.SecretKey())
	assert.NoError(t, err)
	return &http.Cookie{Name: "jwt", Value: signed}
}

func TestAllLogsListingIsReviewerOnly(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	req.AddCookie(sessionCookie(t, "viewer"))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "view_reports unlocks the summary, not raw rows")

	req = httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	req.AddCookie(sessionCookie(t, "manager"))
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReportsSummaryStaysOpenToViewers(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/summary", nil)
	req.AddCookie(sessionCookie(t, "viewer"))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCommitRouteReachesTheOwner(t *testing.T) {
	app, db := setupTestApp(t)

	entry := Models.TaskLog{
		ID:             "worker_T1_2024-05-01",
		LogDate:        "2024-05-01T00:00:00Z",
		EmployeeID:     "worker",
		TaskID:         "T1",
		TaskType:       Models.TypeDaily,
		Status:         Models.StatusCompleted,
		ApprovalStatus: Models.ApprovalRejected,
		ManagerNote:    "wrong totals",
	}
	assert.NoError(t, db.Create(&entry).Error)

	// the reviewer gate on /logs must not swallow the owner's commit
	req := httptest.NewRequest(http.MethodPost, "/api/logs/"+entry.ID+"/commit", nil)
	req.AddCookie(sessionCookie(t, "worker"))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored Models.TaskLog
	assert.NoError(t, db.First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, Models.ApprovalCommitment, stored.ApprovalStatus)
}
