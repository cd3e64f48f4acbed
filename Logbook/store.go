package Logbook

import (
	"errors"

	"gorm.io/gorm"

	"Monjez/Models"
)

// Store is the persistence port the submission engine runs against. The
// engine itself stays pure; all I/O happens behind this interface.
type Store interface {
	// AssignmentsByEmployee returns the employee's assignment edges,
	// empty when none exist.
	AssignmentsByEmployee(employeeID string) ([]Models.Assignment, error)
	// TaskByID resolves a task, nil when it no longer exists.
	TaskByID(taskID string) (*Models.Task, error)
	// HasLogsOn reports whether any log row exists for the employee
	// whose log_date starts with the given calendar date.
	HasLogsOn(employeeID, date string) (bool, error)
	// CreateLogs writes the batch atomically: either every row lands
	// or none do.
	CreateLogs(logs []Models.TaskLog) error
}

// GormStore adapts a GORM database to the Store port.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) AssignmentsByEmployee(employeeID string) ([]Models.Assignment, error) {
	var assignments []Models.Assignment
	err := s.DB.Where("employee_id = ?", employeeID).Find(&assignments).Error
	return assignments, err
}

func (s *GormStore) TaskByID(taskID string) (*Models.Task, error) {
	var task Models.Task
	err := s.DB.First(&task, "id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *GormStore) HasLogsOn(employeeID, date string) (bool, error) {
	var count int64
	err := s.DB.Model(&Models.TaskLog{}).
		Where("employee_id = ? AND log_date LIKE ?", employeeID, date+"%").
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CreateLogs(logs []Models.TaskLog) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&logs).Error
	})
}
