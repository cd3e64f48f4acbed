package Models

import (
	"log"
	"time"
)

// Audit action kinds.
const (
	AuditLogin        = "login"
	AuditLoginFailed  = "login_failed"
	AuditLogout       = "logout"
	AuditCreate       = "create"
	AuditUpdate       = "update"
	AuditDelete       = "delete"
	AuditApprove      = "approve"
	AuditReject       = "reject"
	AuditCommit       = "commit"
	AuditImport       = "import"
	AuditExport       = "export"
)

// SystemAuditLog is an append-only record of administrative and auth
// actions. Rows are never updated or deleted by the application.
type SystemAuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ActorID   string    `json:"actor_id" gorm:"index;type:varchar(64)"`
	ActorName string    `json:"actor_name"`
	Action    string    `json:"action" gorm:"index;type:varchar(20)"`
	Target    string    `json:"target"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (SystemAuditLog) TableName() string {
	return "system_audit_logs"
}

// RecordAudit appends an audit row. Audit failures are logged and
// swallowed so they never block the action being recorded.
func RecordAudit(actor Employee, action, target, detail string) {
	entry := SystemAuditLog{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    action,
		Target:    target,
		Detail:    detail,
	}
	if err := DB.Create(&entry).Error; err != nil {
		log.Printf("audit write failed: %v", err)
	}
}
