package Models

import (
	"strings"
	"time"
)

// Sentinel task ids for rows not tied to an Assignment.
const (
	TaskIDExtra = "EXTRA"
	TaskIDLeave = "LEAVE"
)

// Task log types.
const (
	TypeDaily = "Daily"
	TypeExtra = "Extra"
)

// Canonical completion statuses.
const (
	StatusCompleted     = "Completed"
	StatusPending       = "Pending"
	StatusNotApplicable = "NotApplicable"
	StatusLeave         = "Leave"
)

// Approval lifecycle states.
const (
	ApprovalPending    = "PendingApproval"
	ApprovalCommitment = "CommitmentPending"
	ApprovalApproved   = "Approved"
	ApprovalRejected   = "Rejected"
)

// TaskLog is one reported item for one employee on one calendar date.
// Daily rows carry a deterministic id derived from (employee, task, date)
// so retried writes and re-imports overwrite instead of duplicating; the
// primary key therefore also acts as the uniqueness constraint closing the
// concurrent double-submit race. Extra and Leave rows use random UUIDs.
type TaskLog struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(191)"`
	LogDate        string     `json:"log_date" gorm:"index;type:varchar(32)"` // RFC3339, midnight UTC; only the date part is meaningful
	EmployeeID     string     `json:"employee_id" gorm:"index;type:varchar(64)"`
	TaskID         string     `json:"task_id" gorm:"type:varchar(64)"`
	TaskType       string     `json:"task_type" gorm:"type:varchar(10)"`
	Status         string     `json:"status" gorm:"type:varchar(20)"`
	Description    string     `json:"description"` // snapshot of the task text at submission time
	ApprovalStatus string     `json:"approval_status" gorm:"index;type:varchar(20)"`
	ApprovedBy     string     `json:"approved_by"`
	ApprovedAt     *time.Time `json:"approved_at"`
	ManagerNote    string     `json:"manager_note"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (TaskLog) TableName() string {
	return "task_logs"
}

// legacy localized synonyms accepted at import boundaries
var statusSynonyms = map[string]string{
	"منفذة":     StatusCompleted,
	"تم التنفيذ": StatusCompleted,
	"معلقة":     StatusPending,
	"قيد التنفيذ": StatusPending,
	"لا ينطبق":  StatusNotApplicable,
	"اجازة":     StatusLeave,
	"إجازة":     StatusLeave,
	"completed":      StatusCompleted,
	"pending":        StatusPending,
	"notapplicable":  StatusNotApplicable,
	"not applicable": StatusNotApplicable,
	"leave":          StatusLeave,
}

// NormalizeStatus maps a raw status value, including legacy Arabic
// synonyms from older exports, onto the canonical enum. It is only
// called at data-import boundaries; core code compares canonical
// values directly. Unknown input is returned trimmed so the caller
// can reject it.
func NormalizeStatus(raw string) string {
	s := strings.TrimSpace(raw)
	switch s {
	case StatusCompleted, StatusPending, StatusNotApplicable, StatusLeave:
		return s
	}
	if canonical, ok := statusSynonyms[s]; ok {
		return canonical
	}
	if canonical, ok := statusSynonyms[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

// ValidStatus reports whether s is one of the canonical statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusCompleted, StatusPending, StatusNotApplicable, StatusLeave:
		return true
	}
	return false
}

// ValidTaskType reports whether s is one of the log types.
func ValidTaskType(s string) bool {
	return s == TypeDaily || s == TypeExtra
}

// ValidApprovalStatus reports whether s is a state the review
// lifecycle can act on.
func ValidApprovalStatus(s string) bool {
	switch s {
	case ApprovalPending, ApprovalCommitment, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// DateOf returns the calendar-date component of the log's date.
func (l TaskLog) DateOf() string {
	if len(l.LogDate) >= 10 {
		return l.LogDate[:10]
	}
	return l.LogDate
}
