package models

type Quiz struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null;uniqueIndex:idx_quiz_natural_key" json:"title"`
	Description string `gorm:"size:1024;not null;uniqueIndex:idx_quiz_natural_key" json:"description"`
	IsActive    bool   `gorm:"not null" json:"is_active"`

	Questions []Question `gorm:"foreignKey:QuizID" json:"-"`
}
