package models

import "time"

// QuizResult is one graded attempt. UserID and QuizID are nulled, not
// cascaded, when the referenced user or quiz is deleted.
type QuizResult struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     *uint      `gorm:"index" json:"user_id"`
	QuizID     *uint      `gorm:"index" json:"quiz_id"`
	UserScore  int        `gorm:"not null;default:0" json:"user_score"`
	MaxScore   int        `gorm:"not null;default:1" json:"max_score"`
	FinishedAt time.Time  `gorm:"not null;index" json:"finished_at"`
	NotifiedAt *time.Time `json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Quiz *Quiz `gorm:"foreignKey:QuizID" json:"-"`
}
