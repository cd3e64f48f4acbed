package Controllers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Monjez/Models"
)

// ReportController derives aggregate percentages from log collections.
// Pure arithmetic over already-validated data.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

type StatusBreakdown struct {
	Completed     int `json:"completed"`
	Pending       int `json:"pending"`
	NotApplicable int `json:"not_applicable"`
	Leave         int `json:"leave"`
}

type ApprovalBreakdown struct {
	PendingApproval   int `json:"pending_approval"`
	CommitmentPending int `json:"commitment_pending"`
	Approved          int `json:"approved"`
	Rejected          int `json:"rejected"`
}

type EmployeeSummary struct {
	EmployeeID     string  `json:"employee_id"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

type Summary struct {
	Total          int               `json:"total"`
	Statuses       StatusBreakdown   `json:"statuses"`
	Approvals      ApprovalBreakdown `json:"approvals"`
	CompletionRate float64           `json:"completion_rate"`
	Employees      []EmployeeSummary `json:"employees"`
}

// BuildSummary aggregates a log collection. The completion rate counts
// Completed against Completed+Pending: NotApplicable and Leave rows are
// excluded from the denominator since nothing was expected of them.
func BuildSummary(logs []Models.TaskLog) Summary {
	summary := Summary{Total: len(logs)}
	perEmployee := make(map[string]*EmployeeSummary)

	for _, entry := range logs {
		switch entry.Status {
		case Models.StatusCompleted:
			summary.Statuses.Completed++
		case Models.StatusPending:
			summary.Statuses.Pending++
		case Models.StatusNotApplicable:
			summary.Statuses.NotApplicable++
		case Models.StatusLeave:
			summary.Statuses.Leave++
		}
		switch entry.ApprovalStatus {
		case Models.ApprovalPending:
			summary.Approvals.PendingApproval++
		case Models.ApprovalCommitment:
			summary.Approvals.CommitmentPending++
		case Models.ApprovalApproved:
			summary.Approvals.Approved++
		case Models.ApprovalRejected:
			summary.Approvals.Rejected++
		}

		es, ok := perEmployee[entry.EmployeeID]
		if !ok {
			es = &EmployeeSummary{EmployeeID: entry.EmployeeID}
			perEmployee[entry.EmployeeID] = es
		}
		es.Total++
		if entry.Status == Models.StatusCompleted {
			es.Completed++
		}
	}

	summary.CompletionRate = rate(summary.Statuses.Completed, summary.Statuses.Completed+summary.Statuses.Pending)
	for _, es := range perEmployee {
		es.CompletionRate = rate(es.Completed, es.Total)
		summary.Employees = append(summary.Employees, *es)
	}
	sort.Slice(summary.Employees, func(i, j int) bool {
		return summary.Employees[i].EmployeeID < summary.Employees[j].EmployeeID
	})
	return summary
}

func rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// GetSummary aggregates logs matching the shared filters.
func (ctl *ReportController) GetSummary(c *fiber.Ctx) error {
	query := ctl.DB.Model(&Models.TaskLog{})
	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	query = applyLogFilters(query, c)

	var logs []Models.TaskLog
	if err := query.Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve logs"})
	}
	return c.JSON(BuildSummary(logs))
}
