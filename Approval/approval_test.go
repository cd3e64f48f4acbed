package Approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"Monjez/Models"
)

var reviewTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func pendingLog() *Models.TaskLog {
	return &Models.TaskLog{
		ID:             "E1_T1_2024-05-01",
		EmployeeID:     "E1",
		TaskID:         "T1",
		Status:         Models.StatusCompleted,
		ApprovalStatus: Models.ApprovalPending,
	}
}

func reviewer() Actor {
	return Actor{ID: "M1", Reviewer: true}
}

func TestApprovePending(t *testing.T) {
	entry := pendingLog()

	changed, err := Approve(entry, reviewer(), reviewTime)
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, Models.ApprovalApproved, entry.ApprovalStatus)
	assert.Equal(t, "M1", entry.ApprovedBy)
	assert.Equal(t, reviewTime, *entry.ApprovedAt)
}

func TestApproveCommitted(t *testing.T) {
	entry := pendingLog()
	entry.ApprovalStatus = Models.ApprovalCommitment
	entry.ManagerNote = "numbers do not add up"

	changed, err := Approve(entry, reviewer(), reviewTime)
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, Models.ApprovalApproved, entry.ApprovalStatus)
}

func TestApproveAlreadyApprovedIsNoOp(t *testing.T) {
	original := time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC)
	entry := pendingLog()
	entry.ApprovalStatus = Models.ApprovalApproved
	entry.ApprovedBy = "M2"
	entry.ApprovedAt = &original

	changed, err := Approve(entry, reviewer(), reviewTime)
	assert.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "M2", entry.ApprovedBy, "the original stamp survives")
	assert.Equal(t, original, *entry.ApprovedAt)
}

func TestApproveRejectedFails(t *testing.T) {
	entry := pendingLog()
	entry.ApprovalStatus = Models.ApprovalRejected

	_, err := Approve(entry, reviewer(), reviewTime)
	var te *TransitionError
	assert.ErrorAs(t, err, &te)
}

func TestApproveRequiresReviewer(t *testing.T) {
	entry := pendingLog()

	_, err := Approve(entry, Actor{ID: "E2", Reviewer: false}, reviewTime)
	var ae *AuthorizationError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, Models.ApprovalPending, entry.ApprovalStatus)
}

func TestReviewerCannotApproveOwnLog(t *testing.T) {
	entry := pendingLog()
	entry.EmployeeID = "M1"

	_, err := Approve(entry, reviewer(), reviewTime)
	var ae *AuthorizationError
	assert.ErrorAs(t, err, &ae)
}

func TestRejectPending(t *testing.T) {
	entry := pendingLog()

	err := Reject(entry, reviewer(), "  missing the invoice numbers  ", reviewTime)
	assert.NoError(t, err)
	assert.Equal(t, Models.ApprovalRejected, entry.ApprovalStatus)
	assert.Equal(t, "missing the invoice numbers", entry.ManagerNote)
	assert.Empty(t, entry.ApprovedBy)
	assert.Nil(t, entry.ApprovedAt)
}

func TestRejectRequiresReason(t *testing.T) {
	entry := pendingLog()

	err := Reject(entry, reviewer(), "   ", reviewTime)
	var te *TransitionError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, Models.ApprovalPending, entry.ApprovalStatus)
}

func TestRejectClearsOldApprovalStamp(t *testing.T) {
	stamp := reviewTime
	entry := pendingLog()
	entry.ApprovalStatus = Models.ApprovalCommitment
	entry.ApprovedBy = "M2"
	entry.ApprovedAt = &stamp

	err := Reject(entry, reviewer(), "still wrong", reviewTime)
	assert.NoError(t, err)
	assert.Empty(t, entry.ApprovedBy)
	assert.Nil(t, entry.ApprovedAt)
}

func TestRejectApprovedFails(t *testing.T) {
	entry := pendingLog()
	entry.ApprovalStatus = Models.ApprovalApproved

	err := Reject(entry, reviewer(), "too late", reviewTime)
	var te *TransitionError
	assert.ErrorAs(t, err, &te)
}

func TestCommitRejectedLog(t *testing.T) {
	entry := pendingLog()
	entry.ApprovalStatus = Models.ApprovalRejected
	entry.ManagerNote = "wrong totals"

	err := Commit(entry, Actor{ID: "E1"})
	assert.NoError(t, err)
	assert.Equal(t, Models.ApprovalCommitment, entry.ApprovalStatus)
	assert.Equal(t, "wrong totals", entry.ManagerNote, "the objection stays visible")
}

func TestCommitRequiresOwner(t *testing.T) {
	entry := pendingLog()
	entry.ApprovalStatus = Models.ApprovalRejected

	err := Commit(entry, Actor{ID: "E2"})
	var ae *AuthorizationError
	assert.ErrorAs(t, err, &ae)

	err = Commit(entry, Actor{ID: "M1", Reviewer: true})
	assert.ErrorAs(t, err, &ae, "reviewers do not commit on the employee's behalf")
}

func TestCommitOnlyFromRejected(t *testing.T) {
	for _, state := range []string{
		Models.ApprovalPending,
		Models.ApprovalCommitment,
		Models.ApprovalApproved,
	} {
		entry := pendingLog()
		entry.ApprovalStatus = state

		err := Commit(entry, Actor{ID: "E1"})
		var te *TransitionError
		assert.ErrorAs(t, err, &te, "state %s", state)
	}
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(Actor{ID: "M1", Reviewer: true}))
	assert.False(t, CanDelete(Actor{ID: "E1", Reviewer: false}))
}

func TestActorFrom(t *testing.T) {
	admin := Models.Employee{ID: "M1", Role: Models.RoleAdmin}
	assert.True(t, ActorFrom(admin).Reviewer)

	user := Models.Employee{ID: "E1", Role: Models.RoleUser,
		Permissions: Models.PermissionList(Models.PermLogTasks)}
	assert.False(t, ActorFrom(user).Reviewer)

	delegate := Models.Employee{ID: "E2", Role: Models.RoleUser,
		Permissions: Models.PermissionList(Models.PermManageSystem)}
	assert.True(t, ActorFrom(delegate).Reviewer)
}

func TestApproveBatch(t *testing.T) {
	entries := []Models.TaskLog{
		{ID: "a", EmployeeID: "E1", ApprovalStatus: Models.ApprovalPending},
		{ID: "b", EmployeeID: "M1", ApprovalStatus: Models.ApprovalPending}, // reviewer's own
		{ID: "c", EmployeeID: "E2", ApprovalStatus: Models.ApprovalCommitment},
	}

	changed, err := ApproveBatch(entries, reviewer(), reviewTime)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 2}, changed)

	assert.Equal(t, Models.ApprovalApproved, entries[0].ApprovalStatus)
	assert.Equal(t, Models.ApprovalApproved, entries[2].ApprovalStatus)
	assert.Equal(t, Models.ApprovalPending, entries[1].ApprovalStatus,
		"the reviewer's own rows stay pending for another reviewer")
	assert.Empty(t, entries[1].ApprovedBy)
}

func TestApproveBatchRequiresReviewer(t *testing.T) {
	entries := []Models.TaskLog{
		{ID: "a", EmployeeID: "E1", ApprovalStatus: Models.ApprovalPending},
	}
	_, err := ApproveBatch(entries, Actor{ID: "E2", Reviewer: false}, reviewTime)
	var ae *AuthorizationError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, Models.ApprovalPending, entries[0].ApprovalStatus)
}

func TestApproveBatchSkipsAlreadyApproved(t *testing.T) {
	entries := []Models.TaskLog{
		{ID: "a", EmployeeID: "E1", ApprovalStatus: Models.ApprovalApproved, ApprovedBy: "M2"},
		{ID: "b", EmployeeID: "E1", ApprovalStatus: Models.ApprovalPending},
	}

	changed, err := ApproveBatch(entries, reviewer(), reviewTime)
	assert.NoError(t, err)
	assert.Equal(t, []int{1}, changed)
	assert.Equal(t, "M2", entries[0].ApprovedBy, "re-runs never rewrite earlier stamps")
}
