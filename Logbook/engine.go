package Logbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"Monjez/Models"
)

// Submission is one employee's report for one calendar date. Decisions
// map assigned task ids to a canonical status; ExtraTasks are free-text
// descriptions of unplanned work.
type Submission struct {
	EmployeeID string
	Date       string // YYYY-MM-DD
	Decisions  map[string]string
	ExtraTasks []string
}

// Engine validates submissions and builds the log batch. Every
// precondition is checked before the single CreateLogs call, so a
// failed validation never touches the store.
type Engine struct {
	store Store
	now   func() time.Time
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// WithClock overrides the engine clock, for tests and backdated runs.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Submit validates and persists a daily submission, returning the rows
// written. On rest days routine decisions are discarded and only extra
// entries are accepted.
func (e *Engine) Submit(sub Submission) ([]Models.TaskLog, error) {
	target, err := e.checkDate(sub.EmployeeID, sub.Date)
	if err != nil {
		return nil, err
	}

	extras := trimEntries(sub.ExtraTasks)
	restDay := IsRestDay(target)

	var logs []Models.TaskLog
	if restDay {
		// Routine work is not reported on rest days; whatever
		// decisions came along are dropped, never persisted.
		if len(extras) == 0 {
			return nil, validationErr(CodeEmpty, "nothing to submit: rest days accept extra tasks only")
		}
	} else {
		assignments, err := e.store.AssignmentsByEmployee(sub.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("loading assignments: %w", err)
		}
		if len(assignments) == 0 && len(extras) == 0 {
			return nil, validationErr(CodeEmpty, "nothing to submit for this date")
		}
		SortAssignments(assignments)

		assigned := make(map[string]bool, len(assignments))
		for _, a := range assignments {
			assigned[a.TaskID] = true
			decision, ok := sub.Decisions[a.TaskID]
			if !ok {
				return nil, validationErr(CodeIncomplete, fmt.Sprintf("missing decision for task %s", a.TaskID))
			}
			if !Models.ValidStatus(decision) || decision == Models.StatusLeave {
				return nil, validationErr(CodeBadInput, fmt.Sprintf("invalid status %q for task %s", decision, a.TaskID))
			}
		}
		for taskID := range sub.Decisions {
			if !assigned[taskID] {
				return nil, validationErr(CodeBadInput, fmt.Sprintf("task %s is not assigned to this employee", taskID))
			}
		}

		for _, a := range assignments {
			logs = append(logs, Models.TaskLog{
				ID:             DailyLogID(sub.EmployeeID, a.TaskID, target),
				LogDate:        MidnightUTC(target),
				EmployeeID:     sub.EmployeeID,
				TaskID:         a.TaskID,
				TaskType:       Models.TypeDaily,
				Status:         sub.Decisions[a.TaskID],
				Description:    e.describe(a.TaskID),
				ApprovalStatus: Models.ApprovalPending,
			})
		}
	}

	for _, text := range extras {
		logs = append(logs, Models.TaskLog{
			ID:             uuid.NewString(),
			LogDate:        MidnightUTC(target),
			EmployeeID:     sub.EmployeeID,
			TaskID:         Models.TaskIDExtra,
			TaskType:       Models.TypeExtra,
			Status:         Models.StatusCompleted, // extra work is reported after the fact
			Description:    text,
			ApprovalStatus: Models.ApprovalPending,
		})
	}

	if err := e.store.CreateLogs(logs); err != nil {
		return nil, fmt.Errorf("writing log batch: %w", err)
	}
	return logs, nil
}

// SubmitLeave records the employee absent for the date. Leave bypasses
// the routine/extra split and the rest-day rule, but still honors the
// date window and one-submission-per-day invariants.
func (e *Engine) SubmitLeave(employeeID, date, leaveType string) (*Models.TaskLog, error) {
	target, err := e.checkDate(employeeID, date)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(leaveType) == "" {
		return nil, validationErr(CodeBadInput, "a leave type is required")
	}

	entry := Models.TaskLog{
		ID:             uuid.NewString(),
		LogDate:        MidnightUTC(target),
		EmployeeID:     employeeID,
		TaskID:         Models.TaskIDLeave,
		TaskType:       Models.TypeExtra,
		Status:         Models.StatusLeave,
		Description:    strings.TrimSpace(leaveType),
		ApprovalStatus: Models.ApprovalPending,
	}
	if err := e.store.CreateLogs([]Models.TaskLog{entry}); err != nil {
		return nil, fmt.Errorf("writing leave record: %w", err)
	}
	return &entry, nil
}

// checkDate runs the shared date preconditions: parseable, inside the
// submission window, and not already submitted.
func (e *Engine) checkDate(employeeID, date string) (time.Time, error) {
	target, err := ParseDate(date)
	if err != nil {
		return time.Time{}, validationErr(CodeBadDate, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	if !WithinWindow(e.now(), target) {
		return time.Time{}, validationErr(CodeDateWindow,
			fmt.Sprintf("date %s is outside the allowed window of the past %d days", date, BackfillDays))
	}
	exists, err := e.store.HasLogsOn(employeeID, target.Format(DateLayout))
	if err != nil {
		return time.Time{}, fmt.Errorf("checking existing logs: %w", err)
	}
	if exists {
		return time.Time{}, validationErr(CodeDuplicate,
			fmt.Sprintf("a submission for %s already exists, pick a different date", date))
	}
	return target, nil
}

// describe snapshots the current task text. The snapshot, not a live
// reference, is stored so later task edits never rewrite history.
func (e *Engine) describe(taskID string) string {
	task, err := e.store.TaskByID(taskID)
	if err != nil || task == nil {
		return taskID
	}
	return task.Description
}

func trimEntries(entries []string) []string {
	var out []string
	for _, entry := range entries {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
