package models

import (
	"time"

	"gorm.io/datatypes"
)

type Resume struct {
	ResumeID string `gorm:"column:resume_id;type:uuid;primaryKey" json:"resume_id"`
	UserID   string `gorm:"column:user_id;type:uuid;index" json:"user_id"`

	// JSONB: file_name, file_path (object key) and extracted plain text
	ResumeData datatypes.JSON `gorm:"column:resume_data;type:jsonb" json:"resume_data"`

	UploadedAt time.Time `gorm:"column:uploaded_at;type:timestamptz" json:"uploaded_at"`
}

func (Resume) TableName() string { return "resumes" }
