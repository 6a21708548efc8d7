package postgres

import (
	"context"
	"errors"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
	"gorm.io/gorm"
)

type InterviewRepository interface {
	// Insert fails on a duplicate interview_id; the primary key doubles as
	// the idempotency guard for replayed provider reports.
	Insert(ctx context.Context, iv *models.Interview) error
	GetByID(ctx context.Context, interviewID string) (*models.Interview, error)
	ListByUser(ctx context.Context, userID string) ([]models.Interview, error)
}

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Insert(ctx context.Context, iv *models.Interview) error {
	return r.db.WithContext(ctx).Create(iv).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, interviewID string) (*models.Interview, error) {
	var row models.Interview
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *interviewRepo) ListByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	var rows []models.Interview
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
