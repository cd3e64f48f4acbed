// Package Notify builds and delivers the daily submission digest: who
// has not reported today and how much review work is waiting.
package Notify

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"Monjez/Logbook"
	"Monjez/Models"
)

// Digest summarizes one work day's reporting state.
type Digest struct {
	Date              string
	Missing           []string // employees with assignments and no submission
	AwaitingReview    int64
	AwaitingCommitted int64
}

// BuildDigest computes the digest for the given instant. Returns nil on
// rest days: there is nothing to chase.
func BuildDigest(db *gorm.DB, now time.Time) (*Digest, error) {
	if Logbook.IsRestDay(now) {
		return nil, nil
	}
	date := now.Format(Logbook.DateLayout)
	digest := &Digest{Date: date}

	var employees []Models.Employee
	if err := db.Where("active = ?", true).Order("id").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}

	store := Logbook.NewGormStore(db)
	for _, employee := range employees {
		assignments, err := store.AssignmentsByEmployee(employee.ID)
		if err != nil {
			return nil, err
		}
		if len(assignments) == 0 {
			continue
		}
		submitted, err := store.HasLogsOn(employee.ID, date)
		if err != nil {
			return nil, err
		}
		if !submitted {
			digest.Missing = append(digest.Missing, fmt.Sprintf("%s (%s)", employee.Name, employee.ID))
		}
	}

	if err := db.Model(&Models.TaskLog{}).
		Where("approval_status = ?", Models.ApprovalPending).
		Count(&digest.AwaitingReview).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Models.TaskLog{}).
		Where("approval_status = ?", Models.ApprovalCommitment).
		Count(&digest.AwaitingCommitted).Error; err != nil {
		return nil, err
	}

	return digest, nil
}

// Message renders the digest for Slack and email delivery.
func (d *Digest) Message() string {
	var b strings.Builder
	b.WriteString("*Daily Reporting Digest*\n")
	b.WriteString(fmt.Sprintf("Date: %s\n\n", d.Date))

	if len(d.Missing) == 0 {
		b.WriteString("All employees with assignments have submitted today.\n")
	} else {
		b.WriteString(fmt.Sprintf("%d employees have not submitted yet:\n", len(d.Missing)))
		for _, name := range d.Missing {
			b.WriteString(fmt.Sprintf("  - %s\n", name))
		}
	}

	b.WriteString(fmt.Sprintf("\nLogs awaiting review: %d\n", d.AwaitingReview))
	if d.AwaitingCommitted > 0 {
		b.WriteString(fmt.Sprintf("Re-review requests (commitments): %d\n", d.AwaitingCommitted))
	}
	return b.String()
}
