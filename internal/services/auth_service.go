package services

import (
	"fmt"
	"time"

	"heyprodata_backend/internal/auth"
	"heyprodata_backend/internal/email"
	"heyprodata_backend/internal/logger"
	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"
	"heyprodata_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(refreshToken string) (*dto.LoginResponse, error)
	Logout(refreshToken string) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	emailProvider    email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		refreshTokenRepo: refreshTokenRepo,
		emailProvider:    emailProvider,
	}
}

func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	profile := &models.Profile{
		UserID:      user.ID,
		DisplayName: req.DisplayName,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	go s.sendWelcomeEmail(user.Email, req.DisplayName)

	return s.issueTokens(user.ID)
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended || user.Status == models.UserStatusBanned {
		return nil, apperrors.NewForbiddenError("This account is not active")
	}

	return s.issueTokens(user.ID)
}

func (s *AuthServiceImpl) Refresh(refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.refreshTokenRepo.FindByToken(refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, apperrors.InternalError(err)
	}

	if stored.ExpiresAt.Before(time.Now()) {
		_ = s.refreshTokenRepo.Delete(refreshToken)
		return nil, apperrors.NewUnauthorizedError("Refresh token expired")
	}

	// Rotate: the old token is single-use.
	if err := s.refreshTokenRepo.Delete(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(stored.UserID)
}

func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.refreshTokenRepo.Delete(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(userID string) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshTokenRepo.Create(refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		UserID:       userID,
	}, nil
}

func (s *AuthServiceImpl) sendWelcomeEmail(to, displayName string) {
	msg := &email.Message{
		To:      []string{to},
		Subject: "Welcome to HeyProData",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour HeyProData account is ready. Complete your profile to start applying to gigs.\n",
			displayName,
		),
	}
	if err := s.emailProvider.Send(msg); err != nil {
		logger.WithError(err).Warn("failed to send welcome email", "to", to)
	}
}
