package Controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Monjez/Approval"
	"Monjez/Models"
	"Monjez/middleware"
)

// ApprovalController drives the review lifecycle of task logs.
type ApprovalController struct {
	DB *gorm.DB
}

func NewApprovalController(db *gorm.DB) *ApprovalController {
	return &ApprovalController{DB: db}
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type BulkApproveRequest struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

// ApproveLog approves one log row. Re-approving an approved row is a
// no-op and keeps the original stamp.
func (ctl *ApprovalController) ApproveLog(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var entry Models.TaskLog
	if err := ctl.DB.First(&entry, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log not found"})
	}

	changed, err := Approval.Approve(&entry, Approval.ActorFrom(user), time.Now().UTC())
	if err != nil {
		return approvalError(c, err)
	}
	if changed {
		if err := ctl.DB.Save(&entry).Error; err != nil {
			// The in-memory transition is discarded with the request;
			// the client must not see an optimistic "approved".
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Approval was not confirmed, please retry"})
		}
		Models.RecordAudit(user, Models.AuditApprove, "log:"+entry.ID, entry.EmployeeID)
	}
	return c.JSON(entry)
}

// BulkApprove approves every PendingApproval row matching the filter in
// one transaction: all rows flip or none do.
func (ctl *ApprovalController) BulkApprove(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req BulkApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	query := ctl.DB.Where("approval_status = ?", Models.ApprovalPending)
	if req.EmployeeID != "" {
		query = query.Where("employee_id = ?", req.EmployeeID)
	}
	if req.From != "" {
		query = query.Where("log_date >= ?", req.From)
	}
	if req.To != "" {
		query = query.Where("log_date <= ?", req.To+"T23:59:59Z")
	}

	var entries []Models.TaskLog
	if err := query.Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve pending logs"})
	}

	now := time.Now().UTC()
	actor := Approval.ActorFrom(user)
	approved := 0
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		changed, err := Approval.ApproveBatch(entries, actor, now)
		if err != nil {
			return err
		}
		for _, i := range changed {
			if err := tx.Save(&entries[i]).Error; err != nil {
				return err
			}
		}
		approved = len(changed)
		return nil
	})
	if err != nil {
		var authErr *Approval.AuthorizationError
		if errors.As(err, &authErr) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": authErr.Reason})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Bulk approval was not confirmed, please retry"})
	}

	Models.RecordAudit(user, Models.AuditApprove, "logs:bulk", req.EmployeeID)
	return c.JSON(fiber.Map{"approved": approved})
}

// RejectLog rejects one log row with a mandatory reason.
func (ctl *ApprovalController) RejectLog(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	var entry Models.TaskLog
	if err := ctl.DB.First(&entry, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log not found"})
	}

	if err := Approval.Reject(&entry, Approval.ActorFrom(user), req.Reason, time.Now().UTC()); err != nil {
		return approvalError(c, err)
	}
	if err := ctl.DB.Save(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Rejection was not confirmed, please retry"})
	}

	Models.RecordAudit(user, Models.AuditReject, "log:"+entry.ID, req.Reason)
	return c.JSON(entry)
}

// CommitLog lets the owning employee push a rejected log back into the
// review queue.
func (ctl *ApprovalController) CommitLog(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var entry Models.TaskLog
	if err := ctl.DB.First(&entry, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log not found"})
	}

	if err := Approval.Commit(&entry, Approval.ActorFrom(user)); err != nil {
		return approvalError(c, err)
	}
	if err := ctl.DB.Save(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Commitment was not confirmed, please retry"})
	}

	Models.RecordAudit(user, Models.AuditCommit, "log:"+entry.ID, "")
	return c.JSON(entry)
}

// DeleteLog removes a log row in any state. Reviewer escape hatch.
func (ctl *ApprovalController) DeleteLog(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	if !Approval.CanDelete(Approval.ActorFrom(user)) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Deleting logs requires the manage_system permission"})
	}

	var entry Models.TaskLog
	if err := ctl.DB.First(&entry, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log not found"})
	}
	if err := ctl.DB.Delete(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Deletion was not confirmed, please retry"})
	}

	Models.RecordAudit(user, Models.AuditDelete, "log:"+entry.ID, entry.EmployeeID)
	return c.JSON(fiber.Map{"message": "Log deleted successfully"})
}

// approvalError maps state-machine errors onto HTTP responses.
func approvalError(c *fiber.Ctx, err error) error {
	var authErr *Approval.AuthorizationError
	if errors.As(err, &authErr) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": authErr.Reason})
	}
	var transErr *Approval.TransitionError
	if errors.As(err, &transErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": transErr.Reason})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Action was not confirmed, please retry"})
}
