package Models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Roles assignable to an employee account.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Named permissions. An Admin implicitly holds all of them.
const (
	PermViewDashboard = "view_dashboard"
	PermLogTasks      = "log_tasks"
	PermViewReports   = "view_reports"
	PermManageSystem  = "manage_system"
)

var AllPermissions = []string{PermViewDashboard, PermLogTasks, PermViewReports, PermManageSystem}

// Employee is a system account. The ID doubles as the login credential,
// chosen by the administrator when the account is created.
type Employee struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name        string         `json:"name"`
	JobTitle    string         `json:"job_title"`
	Active      bool           `json:"active" gorm:"default:true"`
	Role        string         `json:"role" gorm:"type:varchar(10);default:User"`
	Permissions datatypes.JSON `json:"permissions"`
	Password    string         `json:"-"` // bcrypt hash, never serialized
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// PermissionList encodes a permission set as a JSON column value.
func PermissionList(perms ...string) datatypes.JSON {
	data, _ := json.Marshal(perms)
	return datatypes.JSON(data)
}

// HasPermission reports whether the employee holds the named permission.
// Admins pass every check.
func (e Employee) HasPermission(perm string) bool {
	if e.Role == RoleAdmin {
		return true
	}
	var perms []string
	if err := json.Unmarshal(e.Permissions, &perms); err != nil {
		return false
	}
	for _, p := range perms {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionSlice decodes the stored permission set.
func (e Employee) PermissionSlice() []string {
	var perms []string
	if err := json.Unmarshal(e.Permissions, &perms); err != nil {
		return nil
	}
	return perms
}

// IsReviewer reports whether the employee may act on other employees' logs.
func (e Employee) IsReviewer() bool {
	return e.Role == RoleAdmin || e.HasPermission(PermManageSystem)
}
