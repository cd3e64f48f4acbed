package Exchange

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"Monjez/Logbook"
	"Monjez/Models"
)

// Canonical column keys per entity. Headers in uploaded workbooks are
// matched against these through normalization plus the alias tables, so
// exports from older spreadsheet layouts keep importing.
var employeeAliases = map[string]string{
	"employeeid":  "id",
	"id":          "id",
	"code":        "id",
	"رقمالموظف":   "id",
	"name":        "name",
	"employeename": "name",
	"الاسم":       "name",
	"jobtitle":    "job_title",
	"title":       "job_title",
	"الوظيفة":     "job_title",
	"role":        "role",
	"الدور":       "role",
	"active":      "active",
	"نشط":         "active",
}

var taskAliases = map[string]string{
	"taskid":      "id",
	"id":          "id",
	"رقمالمهمة":   "id",
	"description": "description",
	"task":        "description",
	"المهمة":      "description",
	"الوصف":       "description",
	"category":    "category",
	"التصنيف":     "category",
}

var assignmentAliases = map[string]string{
	"employeeid": "employee_id",
	"employee":   "employee_id",
	"رقمالموظف":  "employee_id",
	"taskid":     "task_id",
	"task":       "task_id",
	"رقمالمهمة":  "task_id",
}

var logAliases = map[string]string{
	"logid":          "id",
	"id":             "id",
	"date":           "date",
	"logdate":        "date",
	"التاريخ":        "date",
	"employeeid":     "employee_id",
	"employee":       "employee_id",
	"رقمالموظف":      "employee_id",
	"taskid":         "task_id",
	"task":           "task_id",
	"رقمالمهمة":      "task_id",
	"type":           "task_type",
	"tasktype":       "task_type",
	"النوع":          "task_type",
	"status":         "status",
	"الحالة":         "status",
	"description":    "description",
	"الوصف":          "description",
	"approvalstatus": "approval_status",
	"approval":       "approval_status",
	"الاعتماد":       "approval_status",
	"approvedby":     "approved_by",
	"managernote":    "manager_note",
	"note":           "manager_note",
	"الملاحظة":       "manager_note",
}

// NormalizeHeader collapses a header for alias matching: lower-cased
// with spaces, punctuation and direction marks removed.
func NormalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		switch r {
		case ' ', '\t', '-', '_', '.', ':', '#', '/', '\\', '‏', '‎':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// resolveHeaders maps a header row onto canonical keys by column index.
func resolveHeaders(row []string, aliases map[string]string) map[int]string {
	columns := make(map[int]string)
	for i, header := range row {
		if key, ok := aliases[NormalizeHeader(header)]; ok {
			columns[i] = key
		}
	}
	return columns
}

// findSheet locates a sheet by case-insensitive name.
func findSheet(f *excelize.File, want string) string {
	for _, name := range f.GetSheetList() {
		if strings.EqualFold(name, want) {
			return name
		}
	}
	return ""
}

// ParseWorkbook reads a workbook back into a dataset. Missing sheets
// are fine; rows without an id are skipped. Log statuses pass through
// the canonical normalization, so legacy localized values import too.
func ParseWorkbook(f *excelize.File) (Dataset, error) {
	var ds Dataset

	if sheet := findSheet(f, SheetEmployees); sheet != "" {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return ds, err
		}
		if len(rows) > 0 {
			columns := resolveHeaders(rows[0], employeeAliases)
			for _, row := range rows[1:] {
				fields := rowFields(row, columns)
				if fields["id"] == "" {
					continue
				}
				ds.Employees = append(ds.Employees, Models.Employee{
					ID:       fields["id"],
					Name:     fields["name"],
					JobTitle: fields["job_title"],
					Role:     defaultStr(fields["role"], Models.RoleUser),
					Active:   !strings.EqualFold(fields["active"], "false") && fields["active"] != "0",
				})
			}
		}
	}

	if sheet := findSheet(f, SheetTasks); sheet != "" {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return ds, err
		}
		if len(rows) > 0 {
			columns := resolveHeaders(rows[0], taskAliases)
			for _, row := range rows[1:] {
				fields := rowFields(row, columns)
				if fields["id"] == "" {
					continue
				}
				ds.Tasks = append(ds.Tasks, Models.Task{
					ID:          fields["id"],
					Description: fields["description"],
					Category:    fields["category"],
				})
			}
		}
	}

	if sheet := findSheet(f, SheetAssignments); sheet != "" {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return ds, err
		}
		if len(rows) > 0 {
			columns := resolveHeaders(rows[0], assignmentAliases)
			for _, row := range rows[1:] {
				fields := rowFields(row, columns)
				if fields["employee_id"] == "" || fields["task_id"] == "" {
					continue
				}
				ds.Assignments = append(ds.Assignments, Models.Assignment{
					EmployeeID: fields["employee_id"],
					TaskID:     fields["task_id"],
				})
			}
		}
	}

	if sheet := findSheet(f, SheetLogs); sheet != "" {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return ds, err
		}
		if len(rows) > 0 {
			columns := resolveHeaders(rows[0], logAliases)
			for _, row := range rows[1:] {
				fields := rowFields(row, columns)
				entry, err := logFromFields(fields)
				if err != nil {
					return ds, err
				}
				if entry == nil {
					continue
				}
				ds.Logs = append(ds.Logs, *entry)
			}
		}
	}

	return ds, nil
}

// logFromFields builds one TaskLog from resolved row fields. Rows with
// no date or employee are skipped; bad statuses fail the whole import
// so a restore never half-applies.
func logFromFields(fields map[string]string) (*Models.TaskLog, error) {
	if fields["date"] == "" || fields["employee_id"] == "" {
		return nil, nil
	}
	target, err := Logbook.ParseDate(fields["date"])
	if err != nil {
		return nil, fmt.Errorf("unparseable log date %q", fields["date"])
	}

	status := Models.NormalizeStatus(fields["status"])
	if !Models.ValidStatus(status) {
		return nil, fmt.Errorf("unrecognized log status %q", fields["status"])
	}

	taskID := defaultStr(fields["task_id"], Models.TaskIDExtra)
	taskType := defaultStr(fields["task_type"], Models.TypeExtra)
	if !Models.ValidTaskType(taskType) {
		return nil, fmt.Errorf("unrecognized log type %q", fields["task_type"])
	}
	approval := defaultStr(fields["approval_status"], Models.ApprovalPending)
	if !Models.ValidApprovalStatus(approval) {
		return nil, fmt.Errorf("unrecognized approval state %q", fields["approval_status"])
	}

	id := fields["id"]
	if id == "" && taskType == Models.TypeDaily {
		// restore the deterministic identity for routine rows
		id = Logbook.DailyLogID(fields["employee_id"], taskID, target)
	}
	if id == "" {
		return nil, fmt.Errorf("log row for %s on %s is missing an id", fields["employee_id"], fields["date"])
	}

	return &Models.TaskLog{
		ID:             id,
		LogDate:        Logbook.MidnightUTC(target),
		EmployeeID:     fields["employee_id"],
		TaskID:         taskID,
		TaskType:       taskType,
		Status:         status,
		Description:    fields["description"],
		ApprovalStatus: approval,
		ApprovedBy:     fields["approved_by"],
		ManagerNote:    fields["manager_note"],
	}, nil
}

func rowFields(row []string, columns map[int]string) map[string]string {
	fields := make(map[string]string, len(columns))
	for i, key := range columns {
		if i < len(row) {
			fields[key] = strings.TrimSpace(row[i])
		}
	}
	return fields
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
