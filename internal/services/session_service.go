package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vampi-007/AI-Interviewer/internal/cache"
	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/providers/vapi"
	mongorepo "github.com/vampi-007/AI-Interviewer/internal/repositories/mongo"
	pgrepo "github.com/vampi-007/AI-Interviewer/internal/repositories/postgres"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

const (
	sessionKeyPrefix = "interview:"
	sessionTTL       = 30 * time.Minute
)

// SessionService coordinates the interview lifecycle: it schedules a pending
// session into the cache, validates session tokens, reconciles the provider's
// end-of-call report into a durable Interview exactly once, and handles
// user-initiated early termination.
type SessionService interface {
	Schedule(ctx context.Context, p ScheduleParams) (*ScheduleResult, error)
	Validate(ctx context.Context, sessionToken string) (*models.PendingSession, error)
	HandleEndOfCall(ctx context.Context, payload []byte) (*EndOfCallResult, error)
	End(ctx context.Context, sessionToken string) error
	StartCall(ctx context.Context, sessionToken string) (json.RawMessage, error)
	GetInterview(ctx context.Context, interviewID string) (*models.Interview, error)
}

type ScheduleParams struct {
	UserID   string
	PromptID *string
	ResumeID *string
}

type ScheduleResult struct {
	InterviewID  string `json:"interview_id"`
	SessionToken string `json:"session_token"`
}

type EndOfCallResult struct {
	InterviewID       string `json:"interview_id"`
	SuccessEvaluation int    `json:"success_evaluation"`
}

type sessionService struct {
	cache      cache.Cache
	users      pgrepo.UserRepository
	prompts    pgrepo.PromptRepository
	resumes    pgrepo.ResumeRepository
	interviews pgrepo.InterviewRepository
	events     mongorepo.WebhookEventRepository // optional audit trail
	voice      *vapi.Client                     // optional server-side call start
	log        *logrus.Logger
}

func NewSessionService(
	c cache.Cache,
	users pgrepo.UserRepository,
	prompts pgrepo.PromptRepository,
	resumes pgrepo.ResumeRepository,
	interviews pgrepo.InterviewRepository,
	events mongorepo.WebhookEventRepository,
	voice *vapi.Client,
	log *logrus.Logger,
) SessionService {
	return &sessionService{
		cache:      c,
		users:      users,
		prompts:    prompts,
		resumes:    resumes,
		interviews: interviews,
		events:     events,
		voice:      voice,
		log:        log,
	}
}

func sessionKey(token string) string { return sessionKeyPrefix + token }

func (s *sessionService) Schedule(ctx context.Context, p ScheduleParams) (*ScheduleResult, error) {
	const op = "SessionService.Schedule"

	if p.UserID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if p.PromptID == nil && p.ResumeID == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "either prompt_id or resume_id is required", nil)
	}
	if p.PromptID != nil && p.ResumeID != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "exactly one of prompt_id or resume_id must be supplied", nil)
	}

	if _, err := s.users.GetByID(ctx, p.UserID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	if p.PromptID != nil {
		if _, err := s.prompts.GetByID(ctx, *p.PromptID); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "prompt not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to look up prompt", err)
		}
	}
	if p.ResumeID != nil {
		if _, err := s.resumes.GetByID(ctx, *p.ResumeID); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "resume not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to look up resume", err)
		}
	}

	now := time.Now().UTC()
	pending := &models.PendingSession{
		SessionToken: uuid.NewString(),
		UserID:       p.UserID,
		InterviewID:  uuid.NewString(),
		PromptID:     p.PromptID,
		ResumeID:     p.ResumeID,
		ExpiresAt:    now.Add(sessionTTL),
	}

	ok, err := s.cache.SetNXJSON(ctx, sessionKey(pending.SessionToken), pending, sessionTTL)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create pending session", err)
	}
	if !ok {
		// Tokens are UUIDs; a collision means the cache holds stale garbage.
		return nil, utils.E(utils.CodeInternal, op, "session token collision", nil)
	}

	s.log.WithFields(logrus.Fields{
		"interview_id": pending.InterviewID,
		"user_id":      p.UserID,
	}).Info("interview scheduled")

	return &ScheduleResult{
		InterviewID:  pending.InterviewID,
		SessionToken: pending.SessionToken,
	}, nil
}

func (s *sessionService) Validate(ctx context.Context, sessionToken string) (*models.PendingSession, error) {
	const op = "SessionService.Validate"

	if sessionToken == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_token is required", nil)
	}

	var pending models.PendingSession
	hit, err := s.cache.GetJSON(ctx, sessionKey(sessionToken), &pending)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to read session cache", err)
	}
	// A missing key and a logically lapsed entry are indistinguishable to
	// callers; the expires_at field only backs up the physical TTL.
	if !hit || time.Now().UTC().After(pending.ExpiresAt) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid or expired session", nil)
	}
	return &pending, nil
}

// endOfCallPayload mirrors the provider's nested report shape.
type endOfCallPayload struct {
	Message struct {
		StartedAt       string  `json:"startedAt"`
		EndedAt         string  `json:"endedAt"`
		DurationSeconds float64 `json:"durationSeconds"`
		Transcript      string  `json:"transcript"`
		RecordingURL    string  `json:"recordingUrl"`
		Analysis        struct {
			Summary           string `json:"summary"`
			SuccessEvaluation any    `json:"successEvaluation"`
		} `json:"analysis"`
		Assistant struct {
			VariableValues struct {
				SessionToken string `json:"sessionToken"`
			} `json:"variableValues"`
		} `json:"assistant"`
		Artifact struct {
			VideoRecordingURL string `json:"videoRecordingUrl"`
		} `json:"artifact"`
	} `json:"message"`
}

func (s *sessionService) HandleEndOfCall(ctx context.Context, payload []byte) (*EndOfCallResult, error) {
	const op = "SessionService.HandleEndOfCall"

	var report endOfCallPayload
	if err := json.Unmarshal(payload, &report); err != nil {
		s.audit(ctx, "", payload)
		return nil, utils.E(utils.CodeInvalidArgument, op, "malformed end-of-call payload", err)
	}

	token := report.Message.Assistant.VariableValues.SessionToken
	s.audit(ctx, token, payload)
	if token == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session token missing from payload", nil)
	}

	// The pending session is the source of truth for identity and provenance;
	// the payload only contributes what happened during the call. A miss here
	// covers expiry, prior consumption, and unknown tokens alike.
	pending, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	score := coerceScore(report.Message.Analysis.SuccessEvaluation)
	interview := &models.Interview{
		InterviewID:       pending.InterviewID,
		UserID:            pending.UserID,
		PromptID:          pending.PromptID,
		ResumeID:          pending.ResumeID,
		StartTime:         parseProviderTime(report.Message.StartedAt, now),
		EndTime:           parseProviderTime(report.Message.EndedAt, now),
		Duration:          int(report.Message.DurationSeconds),
		Transcript:        report.Message.Transcript,
		Summary:           report.Message.Analysis.Summary,
		RecordingURL:      report.Message.RecordingURL,
		VideoRecordingURL: report.Message.Artifact.VideoRecordingURL,
		SuccessEvaluation: &score,
		CreatedAt:         now,
	}

	// Persisting and consuming the token are one logical completion. On a
	// failed insert the cache entry stays put so the provider's retry can be
	// reconciled again; the interview_id primary key makes the racing
	// duplicate insert fail loudly instead of writing twice.
	if err := s.interviews.Insert(ctx, interview); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist interview", err)
	}

	if err := s.cache.Del(ctx, sessionKey(token)); err != nil {
		// The record is durable; a replay now dies on the primary key.
		s.log.WithError(err).WithField("interview_id", pending.InterviewID).
			Warn("failed to consume session token after persist")
	}

	s.log.WithFields(logrus.Fields{
		"interview_id":       pending.InterviewID,
		"user_id":            pending.UserID,
		"success_evaluation": score,
	}).Info("interview report persisted")

	return &EndOfCallResult{
		InterviewID:       pending.InterviewID,
		SuccessEvaluation: score,
	}, nil
}

// End removes the pending session without persisting anything; the incomplete
// session is discarded. A report arriving afterwards is rejected like any
// unknown token.
func (s *sessionService) End(ctx context.Context, sessionToken string) error {
	const op = "SessionService.End"

	pending, err := s.Validate(ctx, sessionToken)
	if err != nil {
		return err
	}
	if err := s.cache.Del(ctx, sessionKey(sessionToken)); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete pending session", err)
	}

	s.log.WithFields(logrus.Fields{
		"interview_id": pending.InterviewID,
		"user_id":      pending.UserID,
	}).Info("interview session ended early")
	return nil
}

// StartCall launches the voice session on the provider's side for a valid
// pending session. The session token travels in the call's variableValues so
// the eventual end-of-call report can be reconciled.
func (s *sessionService) StartCall(ctx context.Context, sessionToken string) (json.RawMessage, error) {
	const op = "SessionService.StartCall"

	if s.voice == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "voice provider is not configured", nil)
	}

	pending, err := s.Validate(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, pending.UserID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	systemPrompt := "You are conducting a mock interview based on the candidate's resume. Ask questions grounded in their experience."
	if pending.PromptID != nil {
		prompt, err := s.prompts.GetByID(ctx, *pending.PromptID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "prompt not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to look up prompt", err)
		}
		systemPrompt = prompt.Content
	}

	resp, err := s.voice.StartCall(ctx, vapi.StartCallParams{
		SessionToken: sessionToken,
		FirstMessage: fmt.Sprintf("Hey %s, how are you?", user.Username),
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to start provider call", err)
	}

	s.log.WithField("interview_id", pending.InterviewID).Info("provider call started")
	return resp, nil
}

func (s *sessionService) GetInterview(ctx context.Context, interviewID string) (*models.Interview, error) {
	const op = "SessionService.GetInterview"

	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}
	row, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load interview", err)
	}
	return row, nil
}

func (s *sessionService) audit(ctx context.Context, token string, payload []byte) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, token, payload); err != nil {
		s.log.WithError(err).Warn("failed to record webhook event")
	}
}

// coerceScore tolerates the provider sending the evaluation as a number, a
// numeric string, or not at all. Anything unparseable scores 0; a missing
// score never rejects a report.
func coerceScore(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func parseProviderTime(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fallback
	}
	return t.UTC()
}
