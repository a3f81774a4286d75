package services

import (
	"encoding/json"

	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"
	"heyprodata_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type ProfileService interface {
	GetProfile(userID, requesterID string) (*dto.ProfileResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	CheckCompleteness(userID string) (*dto.ProfileCompletenessResponse, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{profileRepo: profileRepo, userRepo: userRepo}
}

func (s *ProfileServiceImpl) GetProfile(userID, requesterID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err, "Profile not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if !profile.IsPublic && requesterID != userID {
		return nil, apperrors.ErrNotFound(repositories.ErrProfileNotFound, "Profile not found")
	}

	return toProfileResponse(profile, requesterID == userID), nil
}

func (s *ProfileServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err, "Profile not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Headline != nil {
		profile.Headline = *req.Headline
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Discipline != nil {
		profile.Discipline = *req.Discipline
	}
	if req.Skills != nil {
		data, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		profile.Skills = datatypes.JSON(data)
	}
	if req.AvatarID != nil {
		profile.AvatarID = req.AvatarID
	}
	if req.ContactEmail != nil {
		profile.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		profile.ContactPhone = *req.ContactPhone
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toProfileResponse(profile, true), nil
}

func (s *ProfileServiceImpl) CheckCompleteness(userID string) (*dto.ProfileCompletenessResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err, "Profile not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ProfileCompletenessResponse{IsComplete: profile.IsComplete()}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"display_name", profile.DisplayName},
		{"discipline", profile.Discipline},
		{"city", profile.City},
		{"bio", profile.Bio},
	} {
		if field.value == "" {
			resp.MissingFields = append(resp.MissingFields, field.name)
		}
	}
	return resp, nil
}

// toProfileResponse maps a profile row to the API shape. Contact fields
// are stripped unless the requester owns the profile.
func toProfileResponse(profile *models.Profile, isOwner bool) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		Headline:    profile.Headline,
		Bio:         profile.Bio,
		City:        profile.City,
		Discipline:  profile.Discipline,
		Skills:      decodeStringList(profile.Skills),
		AvatarID:    profile.AvatarID,
		IsComplete:  profile.IsComplete(),
	}
	if isOwner {
		resp.ContactEmail = profile.ContactEmail
		resp.ContactPhone = profile.ContactPhone
	}
	return resp
}

// decodeStringList unmarshals a JSONB string array, returning nil on
// empty or malformed data.
func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
