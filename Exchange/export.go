// Package Exchange implements spreadsheet interchange of the full
// dataset: a workbook with one sheet per entity, and an importer that
// recognizes header synonyms from older exports.
package Exchange

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"Monjez/Models"
)

// Dataset is the spreadsheet-facing view of the database.
type Dataset struct {
	Employees   []Models.Employee
	Tasks       []Models.Task
	Assignments []Models.Assignment
	Logs        []Models.TaskLog
}

// Sheet names in the exported workbook.
const (
	SheetEmployees   = "Employees"
	SheetTasks       = "Tasks"
	SheetAssignments = "Assignments"
	SheetLogs        = "Logs"
)

// BuildWorkbook renders the dataset as an xlsx workbook.
func BuildWorkbook(ds Dataset) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err != nil {
		headerStyle = 0
	}

	writeSheet := func(name string, headers []string, rows [][]interface{}) error {
		index, err := f.NewSheet(name)
		if err != nil {
			return fmt.Errorf("error creating sheet %s: %v", name, err)
		}
		_ = index

		for i, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(name, cell, header)
		}
		if headerStyle != 0 {
			f.SetRowStyle(name, 1, 1, headerStyle)
		}

		for rowIndex, row := range rows {
			for colIndex, value := range row {
				cell, _ := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
				f.SetCellValue(name, cell, value)
			}
		}

		first, _ := excelize.ColumnNumberToName(1)
		last, _ := excelize.ColumnNumberToName(len(headers))
		f.SetColWidth(name, first, last, 18)
		return nil
	}

	employeeRows := make([][]interface{}, 0, len(ds.Employees))
	for _, e := range ds.Employees {
		employeeRows = append(employeeRows, []interface{}{e.ID, e.Name, e.JobTitle, e.Role, e.Active})
	}
	if err := writeSheet(SheetEmployees, []string{"Employee ID", "Name", "Job Title", "Role", "Active"}, employeeRows); err != nil {
		return nil, err
	}

	taskRows := make([][]interface{}, 0, len(ds.Tasks))
	for _, t := range ds.Tasks {
		taskRows = append(taskRows, []interface{}{t.ID, t.Description, t.Category})
	}
	if err := writeSheet(SheetTasks, []string{"Task ID", "Description", "Category"}, taskRows); err != nil {
		return nil, err
	}

	assignmentRows := make([][]interface{}, 0, len(ds.Assignments))
	for _, a := range ds.Assignments {
		assignmentRows = append(assignmentRows, []interface{}{a.EmployeeID, a.TaskID})
	}
	if err := writeSheet(SheetAssignments, []string{"Employee ID", "Task ID"}, assignmentRows); err != nil {
		return nil, err
	}

	logRows := make([][]interface{}, 0, len(ds.Logs))
	for _, l := range ds.Logs {
		logRows = append(logRows, []interface{}{
			l.ID, l.DateOf(), l.EmployeeID, l.TaskID, l.TaskType,
			l.Status, l.Description, l.ApprovalStatus, l.ApprovedBy, l.ManagerNote,
		})
	}
	logHeaders := []string{
		"Log ID", "Date", "Employee ID", "Task ID", "Type",
		"Status", "Description", "Approval Status", "Approved By", "Manager Note",
	}
	if err := writeSheet(SheetLogs, logHeaders, logRows); err != nil {
		return nil, err
	}

	// drop the default sheet
	f.DeleteSheet("Sheet1")
	return f, nil
}
