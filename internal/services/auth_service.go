package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vampi-007/AI-Interviewer/internal/mailer"
	"github.com/vampi-007/AI-Interviewer/internal/models"
	pgrepo "github.com/vampi-007/AI-Interviewer/internal/repositories/postgres"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type authService struct {
	users  pgrepo.UserRepository
	mail   *mailer.Mailer // nil disables mail
	secret string
	log    *logrus.Logger
}

func NewAuthService(users pgrepo.UserRepository, mail *mailer.Mailer, secret string, log *logrus.Logger) AuthService {
	return &authService{users: users, mail: mail, secret: secret, log: log}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	const op = "AuthService.Register"

	if username == "" || email == "" || len(password) < 6 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "username, email, and a password of at least 6 characters are required", nil)
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check username", err)
	}
	if taken {
		return nil, utils.E(utils.CodeConflict, op, "username already registered", nil)
	}

	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check email", err)
	}
	if taken {
		return nil, utils.E(utils.CodeConflict, op, "email already registered", nil)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	user := &models.User{
		UserID:         uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
		Role:           models.RoleUser,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	if err := s.mail.SendWelcome(user.Email, user.Username); err != nil {
		s.log.WithError(err).WithField("user_id", user.UserID).Warn("failed to send welcome mail")
	}

	s.log.WithField("user_id", user.UserID).Info("user registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	const op = "AuthService.Login"

	if email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}
	if err := utils.CheckPassword(user.HashedPassword, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}
	if !user.IsActive {
		return nil, utils.E(utils.CodeForbidden, op, "account is deactivated", nil)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	const op = "AuthService.Refresh"

	if refreshToken == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "refresh_token is required", nil)
	}

	claims, err := utils.ParseToken(s.secret, refreshToken)
	if err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid refresh token", err)
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid refresh token", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}
	// Rotation: only the most recently issued refresh token is honored.
	if user.RefreshToken != refreshToken {
		return nil, utils.E(utils.CodeUnauthorized, op, "refresh token superseded", nil)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	const op = "AuthService.issueTokens"

	access, err := utils.CreateAccessToken(s.secret, user.UserID, string(user.Role))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign access token", err)
	}
	refresh, err := utils.CreateRefreshToken(s.secret, user.UserID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign refresh token", err)
	}
	if err := s.users.SetRefreshToken(ctx, user.UserID, refresh); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store refresh token", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
