package Logbook

import (
	"sort"

	"Monjez/Models"
)

// ChecklistItem is one entry of an employee's daily routine checklist.
type ChecklistItem struct {
	TaskID      string `json:"task_id"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SortAssignments orders assignments by task id, numeric-aware, so that
// T2 sorts before T10. The order is what the daily checklist shows.
func SortAssignments(assignments []Models.Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		return naturalLess(assignments[i].TaskID, assignments[j].TaskID)
	})
}

// Checklist resolves the ordered checklist for an employee from its
// current assignments. Missing employees simply yield an empty list.
func Checklist(store Store, employeeID string) ([]ChecklistItem, error) {
	assignments, err := store.AssignmentsByEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	SortAssignments(assignments)

	items := make([]ChecklistItem, 0, len(assignments))
	for _, a := range assignments {
		item := ChecklistItem{TaskID: a.TaskID}
		task, err := store.TaskByID(a.TaskID)
		if err != nil {
			return nil, err
		}
		if task != nil {
			item.Description = task.Description
			item.Category = task.Category
		}
		items = append(items, item)
	}
	return items, nil
}

// naturalLess compares two strings treating digit runs as numbers.
func naturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			// compare the full digit runs numerically
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na, nb := trimZeros(a[si:i]), trimZeros(b[sj:j])
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
