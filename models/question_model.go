package models

type Question struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	QuizID       uint   `gorm:"not null;uniqueIndex:idx_question_natural_key" json:"quiz_id"`
	QuestionText string `gorm:"size:1024;not null;uniqueIndex:idx_question_natural_key" json:"question_text"`

	Categories []*Category `gorm:"many2many:questions_categories;" json:"categories"`
	Answers    []Answer    `gorm:"foreignKey:QuestionID" json:"-"`
}
