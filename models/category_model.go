package models

type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description"`

	Questions []*Question `gorm:"many2many:questions_categories;" json:"-"`
}
