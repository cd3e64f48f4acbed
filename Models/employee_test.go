package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	admin := Employee{Role: RoleAdmin}
	assert.True(t, admin.HasPermission(PermManageSystem))
	assert.True(t, admin.HasPermission("anything"), "admins pass every check")

	user := Employee{Role: RoleUser, Permissions: PermissionList(PermLogTasks, PermViewDashboard)}
	assert.True(t, user.HasPermission(PermLogTasks))
	assert.False(t, user.HasPermission(PermManageSystem))

	broken := Employee{Role: RoleUser, Permissions: nil}
	assert.False(t, broken.HasPermission(PermLogTasks))
}

func TestIsReviewer(t *testing.T) {
	assert.True(t, Employee{Role: RoleAdmin}.IsReviewer())
	assert.True(t, Employee{Role: RoleUser, Permissions: PermissionList(PermManageSystem)}.IsReviewer())
	assert.False(t, Employee{Role: RoleUser, Permissions: PermissionList(PermLogTasks)}.IsReviewer())
}

func TestPermissionSlice(t *testing.T) {
	user := Employee{Permissions: PermissionList(PermLogTasks, PermViewReports)}
	assert.Equal(t, []string{PermLogTasks, PermViewReports}, user.PermissionSlice())

	assert.Empty(t, Employee{}.PermissionSlice())
}
