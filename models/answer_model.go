package models

type Answer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;uniqueIndex:idx_answer_natural_key" json:"question_id"`
	AnswerText string `gorm:"size:1024;not null;uniqueIndex:idx_answer_natural_key" json:"answer_text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
}
