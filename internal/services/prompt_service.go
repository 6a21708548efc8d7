package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/providers/llm"
	pgrepo "github.com/vampi-007/AI-Interviewer/internal/repositories/postgres"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

const promptSystemMessage = `You are a senior technical interviewer specializing in creating comprehensive, role-specific coding interview prompts. Generate detailed prompts that accurately match the specified difficulty level and technology stack.`

var promptTemplates = map[models.Difficulty]string{
	models.DifficultyEasy: `Create a junior-level interview prompt for %s focusing on:
- Basic syntax and concepts
- Simple problem-solving
- Fundamental best practices
Include 1-2 easy coding exercises`,

	models.DifficultyMedium: `Create a mid-level interview prompt for %s covering:
- Intermediate concepts and patterns
- Debugging scenarios
- System design basics
Include 2-3 moderate coding challenges`,

	models.DifficultyHard: `Create a senior-level interview prompt for %s emphasizing:
- Advanced system design
- Performance optimization
- Complex problem-solving
- Leadership scenarios
Include 3-5 challenging exercises`,
}

type PromptService interface {
	// Generate reuses an existing prompt for the stack/difficulty pair when
	// one exists; otherwise it asks the model for a fresh one and persists it.
	Generate(ctx context.Context, techStack string, difficulty models.Difficulty) (*models.Prompt, error)
	Get(ctx context.Context, promptID string) (*models.Prompt, error)
	List(ctx context.Context, limit, offset int) ([]models.Prompt, error)
	Delete(ctx context.Context, promptID string) error
}

type promptService struct {
	prompts  pgrepo.PromptRepository
	provider llm.Provider
	log      *logrus.Logger
}

func NewPromptService(prompts pgrepo.PromptRepository, provider llm.Provider, log *logrus.Logger) PromptService {
	return &promptService{prompts: prompts, provider: provider, log: log}
}

func (s *promptService) Generate(ctx context.Context, techStack string, difficulty models.Difficulty) (*models.Prompt, error) {
	const op = "PromptService.Generate"

	if techStack == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "tech_stack is required", nil)
	}
	if !difficulty.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "difficulty must be EASY, MEDIUM, or HARD", nil)
	}

	existing, err := s.prompts.GetByStackAndDifficulty(ctx, techStack, difficulty)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing prompts", err)
	}

	content, err := s.provider.Complete(ctx, promptSystemMessage, fmt.Sprintf(promptTemplates[difficulty], techStack))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "prompt generation failed", err)
	}
	if content == "" {
		return nil, utils.E(utils.CodeInternal, op, "model returned an empty prompt", nil)
	}

	now := time.Now().UTC()
	row := &models.Prompt{
		PromptID:   uuid.NewString(),
		TechStack:  techStack,
		Difficulty: difficulty,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.prompts.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist generated prompt", err)
	}

	s.log.WithFields(logrus.Fields{
		"prompt_id":  row.PromptID,
		"tech_stack": techStack,
		"difficulty": difficulty,
	}).Info("interview prompt generated")
	return row, nil
}

func (s *promptService) Get(ctx context.Context, promptID string) (*models.Prompt, error) {
	const op = "PromptService.Get"

	if promptID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "prompt_id is required", nil)
	}
	row, err := s.prompts.GetByID(ctx, promptID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "prompt not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load prompt", err)
	}
	return row, nil
}

func (s *promptService) List(ctx context.Context, limit, offset int) ([]models.Prompt, error) {
	const op = "PromptService.List"

	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.prompts.List(ctx, limit, offset)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list prompts", err)
	}
	return rows, nil
}

func (s *promptService) Delete(ctx context.Context, promptID string) error {
	const op = "PromptService.Delete"

	if promptID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "prompt_id is required", nil)
	}
	if err := s.prompts.Delete(ctx, promptID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "prompt not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete prompt", err)
	}
	return nil
}
