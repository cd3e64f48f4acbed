package Logbook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Monjez/Models"
)

func TestSortAssignmentsNaturalOrder(t *testing.T) {
	assignments := []Models.Assignment{
		{TaskID: "T10"},
		{TaskID: "T2"},
		{TaskID: "T1"},
		{TaskID: "A5"},
	}
	SortAssignments(assignments)

	var got []string
	for _, a := range assignments {
		got = append(got, a.TaskID)
	}
	assert.Equal(t, []string{"A5", "T1", "T2", "T10"}, got)
}

func TestNaturalLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"T2", "T10", true},
		{"T10", "T2", false},
		{"T02", "T2", true},
		{"T1", "T1", false},
		{"A9", "B1", true},
		{"T1a", "T1b", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, naturalLess(tc.a, tc.b), "%s < %s", tc.a, tc.b)
	}
}

func TestChecklist(t *testing.T) {
	store := &fakeStore{
		assignments: map[string][]Models.Assignment{
			"E1": {
				{EmployeeID: "E1", TaskID: "T10"},
				{EmployeeID: "E1", TaskID: "T2"},
			},
		},
		tasks: map[string]Models.Task{
			"T2":  {ID: "T2", Description: "Check inbox", Category: "Admin"},
			"T10": {ID: "T10", Description: "File report", Category: "Reporting"},
		},
	}

	items, err := Checklist(store, "E1")
	assert.NoError(t, err)
	assert.Equal(t, []ChecklistItem{
		{TaskID: "T2", Description: "Check inbox", Category: "Admin"},
		{TaskID: "T10", Description: "File report", Category: "Reporting"},
	}, items)
}

func TestChecklistUnknownEmployee(t *testing.T) {
	store := &fakeStore{}
	items, err := Checklist(store, "nobody")
	assert.NoError(t, err)
	assert.Empty(t, items)
}
