package Models

import "time"

// Task is a unit of recurring work employees report against.
type Task struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// Assignment links an employee to a task they must report on every work day.
// No validity window: the edge either exists or it does not.
type Assignment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EmployeeID string    `json:"employee_id" gorm:"index;type:varchar(64)"`
	TaskID     string    `json:"task_id" gorm:"index;type:varchar(64)"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}
