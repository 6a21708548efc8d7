package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type InterviewFeedback struct {
	FeedbackID  string `gorm:"column:feedback_id;type:uuid;primaryKey" json:"feedback_id"`
	InterviewID string `gorm:"column:interview_id;type:uuid;index" json:"interview_id"`

	OverallScore    float64 `gorm:"column:overall_score" json:"overall_score"`
	OverallFeedback string  `gorm:"column:overall_feedback;type:text" json:"overall_feedback"`

	Strengths pq.StringArray `gorm:"column:strengths;type:text[]" json:"strengths"`

	// JSONB: ordered list of {area, weakness, suggestion}
	ImprovementAreas datatypes.JSON `gorm:"column:improvement_areas;type:jsonb" json:"improvement_areas"`

	NextSteps pq.StringArray `gorm:"column:next_steps;type:text[]" json:"next_steps"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (InterviewFeedback) TableName() string { return "interview_feedback" }

// ImprovementArea is the element shape stored in ImprovementAreas.
type ImprovementArea struct {
	Area       string `json:"area"`
	Weakness   string `json:"weakness"`
	Suggestion string `json:"suggestion"`
}
