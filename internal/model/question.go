package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is one multiple-choice question of a test. OrderInTest is the
// 0-based position within the test and doubles as the stable questionId that
// answer payloads reference, so row ids never leak into submissions.
type Question struct {
	ID            uint                        `gorm:"primarykey" json:"id"`
	TestID        uint                        `json:"test_id" gorm:"not null;index"`
	OrderInTest   int                         `json:"order_in_test" gorm:"not null"`
	Text          string                      `json:"text" gorm:"type:text;not null"`
	Options       datatypes.JSONSlice[string] `json:"options" gorm:"not null"`
	CorrectOption int                         `json:"correct_option" gorm:"not null"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	DeletedAt     gorm.DeletedAt              `gorm:"index" json:"-"`
}
