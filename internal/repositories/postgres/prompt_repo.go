package postgres

import (
	"context"
	"errors"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
	"gorm.io/gorm"
)

type PromptRepository interface {
	Insert(ctx context.Context, p *models.Prompt) error
	GetByID(ctx context.Context, promptID string) (*models.Prompt, error)
	GetByStackAndDifficulty(ctx context.Context, techStack string, difficulty models.Difficulty) (*models.Prompt, error)
	List(ctx context.Context, limit, offset int) ([]models.Prompt, error)
	Delete(ctx context.Context, promptID string) error
}

type promptRepo struct {
	db *gorm.DB
}

func NewPromptRepo(db *gorm.DB) PromptRepository {
	return &promptRepo{db: db}
}

func (r *promptRepo) Insert(ctx context.Context, p *models.Prompt) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *promptRepo) GetByID(ctx context.Context, promptID string) (*models.Prompt, error) {
	var row models.Prompt
	err := r.db.WithContext(ctx).
		Where("prompt_id = ?", promptID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *promptRepo) GetByStackAndDifficulty(ctx context.Context, techStack string, difficulty models.Difficulty) (*models.Prompt, error) {
	var row models.Prompt
	err := r.db.WithContext(ctx).
		Where("tech_stack = ? AND difficulty = ?", techStack, difficulty).
		Order("created_at DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *promptRepo) List(ctx context.Context, limit, offset int) ([]models.Prompt, error) {
	var rows []models.Prompt
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *promptRepo) Delete(ctx context.Context, promptID string) error {
	res := r.db.WithContext(ctx).
		Where("prompt_id = ?", promptID).
		Delete(&models.Prompt{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
