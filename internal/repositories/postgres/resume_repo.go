package postgres

import (
	"context"
	"errors"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
	"gorm.io/gorm"
)

type ResumeRepository interface {
	Insert(ctx context.Context, rm *models.Resume) error
	GetByID(ctx context.Context, resumeID string) (*models.Resume, error)
	LatestByUser(ctx context.Context, userID string) (*models.Resume, error)
}

type resumeRepo struct {
	db *gorm.DB
}

func NewResumeRepo(db *gorm.DB) ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) Insert(ctx context.Context, rm *models.Resume) error {
	return r.db.WithContext(ctx).Create(rm).Error
}

func (r *resumeRepo) GetByID(ctx context.Context, resumeID string) (*models.Resume, error) {
	var row models.Resume
	err := r.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *resumeRepo) LatestByUser(ctx context.Context, userID string) (*models.Resume, error) {
	var row models.Resume
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}
