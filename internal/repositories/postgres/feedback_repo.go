package postgres

import (
	"context"
	"errors"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Insert(ctx context.Context, fb *models.InterviewFeedback) error
	GetByInterviewID(ctx context.Context, interviewID string) (*models.InterviewFeedback, error)
}

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Insert(ctx context.Context, fb *models.InterviewFeedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *feedbackRepo) GetByInterviewID(ctx context.Context, interviewID string) (*models.InterviewFeedback, error) {
	var row models.InterviewFeedback
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("created_at DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}
