package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Completed", StatusCompleted},
		{"completed", StatusCompleted},
		{"منفذة", StatusCompleted},
		{"تم التنفيذ", StatusCompleted},
		{"Pending", StatusPending},
		{"معلقة", StatusPending},
		{"قيد التنفيذ", StatusPending},
		{"NotApplicable", StatusNotApplicable},
		{"not applicable", StatusNotApplicable},
		{"لا ينطبق", StatusNotApplicable},
		{"Leave", StatusLeave},
		{"اجازة", StatusLeave},
		{"إجازة", StatusLeave},
		{"  Completed  ", StatusCompleted},
		{"Done", "Done"}, // unknown passes through for the caller to reject
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeStatus(tc.in), "input %q", tc.in)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusCompleted, StatusPending, StatusNotApplicable, StatusLeave} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("Done"))
	assert.False(t, ValidStatus("منفذة"), "synonyms must be normalized before validation")
	assert.False(t, ValidStatus(""))
}

func TestDateOf(t *testing.T) {
	entry := TaskLog{LogDate: "2024-05-01T00:00:00Z"}
	assert.Equal(t, "2024-05-01", entry.DateOf())

	short := TaskLog{LogDate: "2024-05"}
	assert.Equal(t, "2024-05", short.DateOf())
}

func TestValidTaskType(t *testing.T) {
	assert.True(t, ValidTaskType(TypeDaily))
	assert.True(t, ValidTaskType(TypeExtra))
	assert.False(t, ValidTaskType("Garbage"))
	assert.False(t, ValidTaskType(""))
}

func TestValidApprovalStatus(t *testing.T) {
	for _, s := range []string{ApprovalPending, ApprovalCommitment, ApprovalApproved, ApprovalRejected} {
		assert.True(t, ValidApprovalStatus(s))
	}
	assert.False(t, ValidApprovalStatus("TotallyBogusState"))
	assert.False(t, ValidApprovalStatus(""))
}
