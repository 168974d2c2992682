package model

import (
	"time"

	"gorm.io/gorm"
)

// Test is an exam definition: an ordered question set, the window during
// which attempts may be started, and the per-attempt duration in minutes.
type Test struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description,omitempty"`
	CreatedBy    uint           `json:"created_by" gorm:"not null;index"`
	StartTime    time.Time      `json:"start_time" gorm:"not null"`
	EndTime      time.Time      `json:"end_time" gorm:"not null"`
	ExamDuration int            `json:"exam_duration" gorm:"not null"` // minutes per attempt
	Questions    []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
