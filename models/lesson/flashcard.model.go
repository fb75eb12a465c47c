package lesson

import "gorm.io/gorm"

// FlashcardSet groups generated flashcards for a lesson
type FlashcardSet struct {
	gorm.Model
	LessonID  uint `json:"lesson_id" gorm:"index;not null"`
	IsDeleted bool `gorm:"default:false"`
}

// Flashcard is a single front/back study card
type Flashcard struct {
	gorm.Model
	SetID     uint   `json:"set_id" gorm:"index;not null"`
	CardID    string `json:"card_id"` // generator-assigned id, e.g. card1
	Front     string `json:"front" gorm:"type:text"`
	Back      string `json:"back" gorm:"type:text"`
	IsDeleted bool   `gorm:"default:false"`
}
