package Exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"Monjez/Models"
)

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Employee ID", "employeeid"},
		{"employee_id", "employeeid"},
		{"  Task-ID ", "taskid"},
		{"LOG.DATE", "logdate"},
		{"الاسم", "الاسم"},
		{"رقم الموظف", "رقمالموظف"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeHeader(tc.in), "input %q", tc.in)
	}
}

func TestResolveHeadersIgnoresUnknownColumns(t *testing.T) {
	columns := resolveHeaders([]string{"Employee ID", "Favorite Color", "Name"}, employeeAliases)
	assert.Equal(t, map[int]string{0: "id", 2: "name"}, columns)
}

func TestWorkbookRoundTrip(t *testing.T) {
	ds := Dataset{
		Employees: []Models.Employee{
			{ID: "E1", Name: "Sara", JobTitle: "Accountant", Role: Models.RoleUser, Active: true},
			{ID: "E2", Name: "Omar", JobTitle: "Clerk", Role: Models.RoleUser, Active: false},
		},
		Tasks: []Models.Task{
			{ID: "T1", Description: "Reconcile accounts", Category: "Finance"},
		},
		Assignments: []Models.Assignment{
			{EmployeeID: "E1", TaskID: "T1"},
		},
		Logs: []Models.TaskLog{{
			ID:             "E1_T1_2024-05-01",
			LogDate:        "2024-05-01T00:00:00Z",
			EmployeeID:     "E1",
			TaskID:         "T1",
			TaskType:       Models.TypeDaily,
			Status:         Models.StatusCompleted,
			Description:    "Reconcile accounts",
			ApprovalStatus: Models.ApprovalApproved,
			ApprovedBy:     "M1",
		}},
	}

	f, err := BuildWorkbook(ds)
	assert.NoError(t, err)

	parsed, err := ParseWorkbook(f)
	assert.NoError(t, err)

	assert.Len(t, parsed.Employees, 2)
	assert.Equal(t, "E1", parsed.Employees[0].ID)
	assert.Equal(t, "Sara", parsed.Employees[0].Name)
	assert.True(t, parsed.Employees[0].Active)
	assert.False(t, parsed.Employees[1].Active)

	assert.Len(t, parsed.Tasks, 1)
	assert.Equal(t, "Reconcile accounts", parsed.Tasks[0].Description)

	assert.Len(t, parsed.Assignments, 1)
	assert.Equal(t, "T1", parsed.Assignments[0].TaskID)

	assert.Len(t, parsed.Logs, 1)
	entry := parsed.Logs[0]
	assert.Equal(t, "E1_T1_2024-05-01", entry.ID)
	assert.Equal(t, "2024-05-01T00:00:00Z", entry.LogDate)
	assert.Equal(t, Models.StatusCompleted, entry.Status)
	assert.Equal(t, Models.ApprovalApproved, entry.ApprovalStatus)
	assert.Equal(t, "M1", entry.ApprovedBy)
}

func TestParseWorkbookArabicHeaders(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetLogs)
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A1", &[]string{
		"التاريخ", "رقم الموظف", "رقم المهمة", "النوع", "الحالة", "الوصف", "الاعتماد",
	}))
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A2", &[]string{
		"2024-05-01", "E1", "T1", "Daily", "منفذة", "مراجعة الحسابات", "PendingApproval",
	}))

	parsed, err := ParseWorkbook(f)
	assert.NoError(t, err)
	assert.Len(t, parsed.Logs, 1)

	entry := parsed.Logs[0]
	assert.Equal(t, Models.StatusCompleted, entry.Status, "legacy synonyms map onto the enum")
	// routine rows regain their deterministic identity
	assert.Equal(t, "E1_T1_2024-05-01", entry.ID)
	assert.Equal(t, Models.TypeDaily, entry.TaskType)
	assert.Equal(t, "مراجعة الحسابات", entry.Description)
}

func TestParseWorkbookSkipsBlankRows(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetLogs)
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A1", &[]string{"Date", "Employee ID", "Status"}))
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A2", &[]string{"", "", ""}))
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A3", &[]string{"2024-05-01", "", "Completed"}))

	parsed, err := ParseWorkbook(f)
	assert.NoError(t, err)
	assert.Empty(t, parsed.Logs)
}

func TestParseWorkbookRejectsUnknownStatus(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetLogs)
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A1", &[]string{"Log ID", "Date", "Employee ID", "Status"}))
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A2", &[]string{"x1", "2024-05-01", "E1", "Mostly Done"}))

	_, err := ParseWorkbook(f)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Mostly Done")
}

func TestParseWorkbookMissingSheetsIsEmpty(t *testing.T) {
	parsed, err := ParseWorkbook(excelize.NewFile())
	assert.NoError(t, err)
	assert.Empty(t, parsed.Employees)
	assert.Empty(t, parsed.Logs)
}

func TestFindSheetCaseInsensitive(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "logs")
	assert.Equal(t, "logs", findSheet(f, SheetLogs))
	assert.Equal(t, "", findSheet(f, SheetEmployees))
}

func TestParseWorkbookRejectsUnknownApprovalState(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetLogs)
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A1", &[]string{
		"Log ID", "Date", "Employee ID", "Type", "Status", "Approval Status",
	}))
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A2", &[]string{
		"x1", "2024-05-01", "E1", "Daily", "Completed", "TotallyBogusState",
	}))

	_, err := ParseWorkbook(f)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TotallyBogusState")
}

func TestParseWorkbookRejectsUnknownType(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetLogs)
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A1", &[]string{
		"Log ID", "Date", "Employee ID", "Type", "Status",
	}))
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A2", &[]string{
		"x1", "2024-05-01", "E1", "Garbage", "Completed",
	}))

	_, err := ParseWorkbook(f)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Garbage")
}

func TestParseWorkbookDefaultsBlankTypeAndApproval(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetLogs)
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A1", &[]string{"Log ID", "Date", "Employee ID", "Status"}))
	assert.NoError(t, f.SetSheetRow(SheetLogs, "A2", &[]string{"x1", "2024-05-01", "E1", "Completed"}))

	parsed, err := ParseWorkbook(f)
	assert.NoError(t, err)
	assert.Len(t, parsed.Logs, 1)
	assert.Equal(t, Models.TypeExtra, parsed.Logs[0].TaskType)
	assert.Equal(t, Models.ApprovalPending, parsed.Logs[0].ApprovalStatus)
}
