// Package Approval implements the review lifecycle of task logs:
// PendingApproval -> Approved | Rejected, with a commitment path that
// lets the owning employee push a rejected log back into review.
package Approval

import (
	"fmt"
	"strings"
	"time"

	"Monjez/Models"
)

// Actor identifies who is attempting a transition. Reviewer is derived
// from the employee's role and permission set by the caller; the state
// machine itself never reads the database.
type Actor struct {
	ID       string
	Reviewer bool
}

// ActorFrom builds an Actor from an authenticated employee.
func ActorFrom(e Models.Employee) Actor {
	return Actor{ID: e.ID, Reviewer: e.IsReviewer()}
}

// AuthorizationError rejects a transition attempted by the wrong actor.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// TransitionError rejects a transition not allowed from the current state.
type TransitionError struct {
	Reason string
}

func (e *TransitionError) Error() string {
	return e.Reason
}

// Approve moves a pending or committed log to Approved, stamping the
// reviewer and time. Approving an already-approved log is a no-op: the
// original stamp is kept and changed reports false.
func Approve(entry *Models.TaskLog, reviewer Actor, now time.Time) (changed bool, err error) {
	if err := reviewCheck(entry, reviewer); err != nil {
		return false, err
	}
	switch entry.ApprovalStatus {
	case Models.ApprovalApproved:
		return false, nil
	case Models.ApprovalPending, Models.ApprovalCommitment:
		entry.ApprovalStatus = Models.ApprovalApproved
		entry.ApprovedBy = reviewer.ID
		entry.ApprovedAt = &now
		return true, nil
	default:
		return false, &TransitionError{fmt.Sprintf("cannot approve a log in state %s", entry.ApprovalStatus)}
	}
}

// Reject moves a pending or committed log to Rejected. A non-empty
// reason is mandatory; it is surfaced back to the employee as the
// manager note.
func Reject(entry *Models.TaskLog, reviewer Actor, reason string, now time.Time) error {
	if err := reviewCheck(entry, reviewer); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &TransitionError{"a rejection reason is required"}
	}
	switch entry.ApprovalStatus {
	case Models.ApprovalPending, Models.ApprovalCommitment:
		entry.ApprovalStatus = Models.ApprovalRejected
		entry.ManagerNote = reason
		entry.ApprovedBy = ""
		entry.ApprovedAt = nil
		return nil
	default:
		return &TransitionError{fmt.Sprintf("cannot reject a log in state %s", entry.ApprovalStatus)}
	}
}

// Commit is the only transition available to the log's owner: it flags
// a rejected log for re-review. The manager note stays visible so the
// reviewer remembers the original objection.
func Commit(entry *Models.TaskLog, actor Actor) error {
	if actor.ID != entry.EmployeeID {
		return &AuthorizationError{"only the owning employee may commit a rejected log"}
	}
	if entry.ApprovalStatus != Models.ApprovalRejected {
		return &TransitionError{fmt.Sprintf("cannot commit a log in state %s", entry.ApprovalStatus)}
	}
	entry.ApprovalStatus = Models.ApprovalCommitment
	return nil
}

// ApproveBatch approves every entry the reviewer may act on, returning
// the indexes of entries that changed. The reviewer's own rows are
// skipped, not failed: they stay pending for another reviewer, and a
// reviewer who also logs tasks can still sweep the rest of the queue.
func ApproveBatch(entries []Models.TaskLog, reviewer Actor, now time.Time) ([]int, error) {
	if !reviewer.Reviewer {
		return nil, &AuthorizationError{"reviewing logs requires the manage_system permission"}
	}
	var changed []int
	for i := range entries {
		if entries[i].EmployeeID == reviewer.ID {
			continue
		}
		ok, err := Approve(&entries[i], reviewer, now)
		if err != nil {
			return nil, err
		}
		if ok {
			changed = append(changed, i)
		}
	}
	return changed, nil
}

// CanDelete reports whether the actor may remove a log outright. This
// is the reviewer escape hatch, not a workflow transition.
func CanDelete(actor Actor) bool {
	return actor.Reviewer
}

// reviewCheck enforces the two review rules: only reviewers act, and
// nobody reviews their own rows.
func reviewCheck(entry *Models.TaskLog, reviewer Actor) error {
	if !reviewer.Reviewer {
		return &AuthorizationError{"reviewing logs requires the manage_system permission"}
	}
	if reviewer.ID == entry.EmployeeID {
		return &AuthorizationError{"reviewers cannot review their own logs"}
	}
	return nil
}
