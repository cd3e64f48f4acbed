package Notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDigestSkipsRestDays(t *testing.T) {
	// Friday 2024-05-03; the store is never touched
	digest, err := BuildDigest(nil, time.Date(2024, 5, 3, 16, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Nil(t, digest)
}

func TestDigestMessageAllSubmitted(t *testing.T) {
	digest := &Digest{Date: "2024-05-01", AwaitingReview: 4}
	message := digest.Message()

	assert.Contains(t, message, "2024-05-01")
	assert.Contains(t, message, "All employees with assignments have submitted today.")
	assert.Contains(t, message, "Logs awaiting review: 4")
	assert.NotContains(t, message, "commitments")
}

func TestDigestMessageMissingEmployees(t *testing.T) {
	digest := &Digest{
		Date:              "2024-05-01",
		Missing:           []string{"Sara (E1)", "Omar (E2)"},
		AwaitingReview:    7,
		AwaitingCommitted: 2,
	}
	message := digest.Message()

	assert.Contains(t, message, "2 employees have not submitted yet:")
	assert.Contains(t, message, "Sara (E1)")
	assert.Contains(t, message, "Omar (E2)")
	assert.Contains(t, message, "Re-review requests (commitments): 2")
}
