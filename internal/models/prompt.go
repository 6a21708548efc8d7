package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Prompt struct {
	PromptID   string     `gorm:"column:prompt_id;type:uuid;primaryKey" json:"prompt_id"`
	TechStack  string     `gorm:"column:tech_stack;type:text;index" json:"tech_stack"`
	Difficulty Difficulty `gorm:"column:difficulty;type:text" json:"difficulty"`
	Content    string     `gorm:"column:content;type:text" json:"content"`
	CreatedAt  time.Time  `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Prompt) TableName() string { return "prompts" }
