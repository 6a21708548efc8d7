package models

import "time"

// Interview is the durable record of a completed voice session. The id is
// minted at scheduling time so the pending session and the persisted row
// share identity; timing and content come from the provider's report.
type Interview struct {
	InterviewID string  `gorm:"column:interview_id;type:uuid;primaryKey" json:"interview_id"`
	UserID      string  `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	PromptID    *string `gorm:"column:prompt_id;type:uuid" json:"prompt_id,omitempty"`
	ResumeID    *string `gorm:"column:resume_id;type:uuid" json:"resume_id,omitempty"`

	StartTime time.Time `gorm:"column:start_time;type:timestamptz" json:"start_time"`
	EndTime   time.Time `gorm:"column:end_time;type:timestamptz" json:"end_time"`
	Duration  int       `gorm:"column:duration" json:"duration"` // seconds

	Transcript        string `gorm:"column:transcript;type:text" json:"transcript"`
	Summary           string `gorm:"column:summary;type:text" json:"summary"`
	RecordingURL      string `gorm:"column:recording_url;type:text" json:"recording_url,omitempty"`
	VideoRecordingURL string `gorm:"column:video_recording_url;type:text" json:"video_recording_url,omitempty"`

	// 0-10 provider score; nil means the provider never delivered one.
	SuccessEvaluation *int `gorm:"column:success_evaluation" json:"success_evaluation"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Interview) TableName() string { return "interviews" }
