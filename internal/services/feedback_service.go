package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/vampi-007/AI-Interviewer/internal/mailer"
	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/providers/llm"
	pgrepo "github.com/vampi-007/AI-Interviewer/internal/repositories/postgres"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

const feedbackSystemPrompt = `You are an experienced interview coach providing constructive, professional, and ethical feedback on voice-based technical interviews. Keep the tone objective, encouraging, and actionable.`

const feedbackPromptTemplate = `Interview details:
- Audio interview transcript: %s
- Assessment score: %d/10
- Duration: %d seconds

This interview focused on verbal technical explanations rather than written code. Evaluate the candidate on clarity of verbal communication, technical depth, logical problem-solving, and confidence.

Respond with only a JSON object of this exact shape:
{
  "overall_score": float,
  "overall_feedback": "string",
  "strengths": ["string"],          // 3-5 items
  "improvement_areas": [            // 3-5 items
    {"area": "string", "weakness": "string", "suggestion": "string"}
  ],
  "next_steps": ["string"]          // 3 items
}

Frame weaknesses as opportunities for growth and keep recommendations specific and practical.`

// FeedbackService turns a persisted interview's transcript and score into a
// structured feedback record via the text-generation provider.
type FeedbackService interface {
	Generate(ctx context.Context, interviewID string) (*models.InterviewFeedback, error)
	GetByInterviewID(ctx context.Context, interviewID string) (*models.InterviewFeedback, error)
}

type feedbackService struct {
	interviews pgrepo.InterviewRepository
	feedback   pgrepo.FeedbackRepository
	users      pgrepo.UserRepository
	provider   llm.Provider
	mail       *mailer.Mailer // nil disables mail
	log        *logrus.Logger
}

func NewFeedbackService(
	interviews pgrepo.InterviewRepository,
	feedback pgrepo.FeedbackRepository,
	users pgrepo.UserRepository,
	provider llm.Provider,
	mail *mailer.Mailer,
	log *logrus.Logger,
) FeedbackService {
	return &feedbackService{
		interviews: interviews,
		feedback:   feedback,
		users:      users,
		provider:   provider,
		mail:       mail,
		log:        log,
	}
}

// feedbackPayload is the structure the model is asked to return.
type feedbackPayload struct {
	OverallScore     *float64                 `json:"overall_score"`
	OverallFeedback  string                   `json:"overall_feedback"`
	Strengths        []string                 `json:"strengths"`
	ImprovementAreas []models.ImprovementArea `json:"improvement_areas"`
	NextSteps        []string                 `json:"next_steps"`
}

func (p *feedbackPayload) validate() error {
	switch {
	case p.OverallScore == nil:
		return errors.New("overall_score missing")
	case p.OverallFeedback == "":
		return errors.New("overall_feedback missing")
	case len(p.Strengths) == 0:
		return errors.New("strengths missing")
	case len(p.ImprovementAreas) == 0:
		return errors.New("improvement_areas missing")
	case len(p.NextSteps) == 0:
		return errors.New("next_steps missing")
	}
	for _, a := range p.ImprovementAreas {
		if a.Area == "" || a.Weakness == "" || a.Suggestion == "" {
			return errors.New("improvement_areas entry incomplete")
		}
	}
	return nil
}

func (s *feedbackService) Generate(ctx context.Context, interviewID string) (*models.InterviewFeedback, error) {
	const op = "FeedbackService.Generate"

	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}

	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}

	// Each missing precondition is reported distinctly.
	if interview.Transcript == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview transcript not available", nil)
	}
	if interview.SuccessEvaluation == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview evaluation score not available", nil)
	}

	prompt := fmt.Sprintf(feedbackPromptTemplate,
		interview.Transcript, *interview.SuccessEvaluation, interview.Duration)

	raw, err := s.provider.Complete(ctx, feedbackSystemPrompt, prompt)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "feedback generation failed", err)
	}

	// The model is not guaranteed to return bare JSON; pull out the first
	// balanced object before decoding.
	obj, err := utils.ExtractJSONObject(raw)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "no structured feedback in model response", err)
	}

	var payload feedbackPayload
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to parse feedback response", err)
	}
	if err := payload.validate(); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "incomplete feedback response", err)
	}

	areas, err := json.Marshal(payload.ImprovementAreas)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode improvement areas", err)
	}

	row := &models.InterviewFeedback{
		FeedbackID:       uuid.NewString(),
		InterviewID:      interview.InterviewID,
		OverallScore:     *payload.OverallScore,
		OverallFeedback:  payload.OverallFeedback,
		Strengths:        payload.Strengths,
		ImprovementAreas: datatypes.JSON(areas),
		NextSteps:        payload.NextSteps,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.feedback.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist feedback", err)
	}

	s.notify(ctx, interview)

	s.log.WithFields(logrus.Fields{
		"interview_id": interview.InterviewID,
		"feedback_id":  row.FeedbackID,
	}).Info("interview feedback generated")

	return row, nil
}

func (s *feedbackService) notify(ctx context.Context, interview *models.Interview) {
	if s.mail == nil {
		return
	}
	user, err := s.users.GetByID(ctx, interview.UserID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", interview.UserID).Warn("failed to load user for feedback mail")
		return
	}
	if err := s.mail.SendFeedbackReady(user.Email, interview.InterviewID); err != nil {
		s.log.WithError(err).WithField("interview_id", interview.InterviewID).Warn("failed to send feedback mail")
	}
}

func (s *feedbackService) GetByInterviewID(ctx context.Context, interviewID string) (*models.InterviewFeedback, error) {
	const op = "FeedbackService.GetByInterviewID"

	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}
	row, err := s.feedback.GetByInterviewID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "feedback not found for this interview", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load feedback", err)
	}
	return row, nil
}
