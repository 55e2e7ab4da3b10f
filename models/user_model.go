package models

import "time"

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;index" json:"name"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	QuizResults []QuizResult `gorm:"foreignKey:UserID" json:"-"`
}
