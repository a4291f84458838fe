package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	OwnerID     uint64         `gorm:"not null" json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

// Progress returns the completion percentage over the loaded tasks.
// It is derived on every call and never persisted.
func (p *Project) Progress() int {
	completed := 0
	for _, task := range p.Tasks {
		if task.Status == TaskStatusCompleted {
			completed++
		}
	}
	return CompletionPercent(completed, len(p.Tasks))
}

// CompletionPercent computes floor(100 * completed / total), or 0 when there
// are no tasks. The dashboard uses the same formula system-wide.
func CompletionPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}
