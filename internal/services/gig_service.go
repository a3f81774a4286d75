package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"heyprodata_backend/internal/logger"
	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"
	"heyprodata_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const defaultGigLifetime = 30 * 24 * time.Hour

type GigService interface {
	CreateGig(creatorID string, req *dto.CreateGigRequest) (*dto.GigResponse, error)
	GetGig(idOrSlug string) (*dto.GigResponse, error)
	ListGigs(criteria repositories.GigCriteria) (*dto.GigListResponse, error)
	ListMyGigs(creatorID string) ([]dto.GigResponse, error)
	UpdateGig(gigID, requesterID string, req *dto.UpdateGigRequest) (*dto.GigResponse, error)
	CloseGig(gigID, requesterID string) (*dto.GigResponse, error)
	DeleteGig(gigID, requesterID string) error
}

type GigServiceImpl struct {
	gigRepo repositories.GigRepository
}

func NewGigService(gigRepo repositories.GigRepository) GigService {
	return &GigServiceImpl{gigRepo: gigRepo}
}

func (s *GigServiceImpl) CreateGig(creatorID string, req *dto.CreateGigRequest) (*dto.GigResponse, error) {
	if !req.IsRequestQuote && req.BudgetMin == nil && req.BudgetMax == nil {
		return nil, apperrors.ErrInvalidOperation("gig", "Provide a budget range or mark the gig as request-quote")
	}

	categoriesJSON, err := json.Marshal(req.Categories)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	expiresAt := req.ExpiresAt
	if expiresAt == nil {
		t := time.Now().Add(defaultGigLifetime)
		expiresAt = &t
	}

	gig := &models.Gig{
		Slug:           generateSlug(req.Title),
		CreatedBy:      creatorID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.GigStatusActive,
		ExpiresAt:      expiresAt,
		BudgetMin:      req.BudgetMin,
		BudgetMax:      req.BudgetMax,
		Currency:       strings.ToUpper(req.Currency),
		IsRequestQuote: req.IsRequestQuote,
		Categories:     datatypes.JSON(categoriesJSON),
		City:           req.City,
	}

	if err := s.gigRepo.Create(gig); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toGigResponse(gig), nil
}

func (s *GigServiceImpl) GetGig(idOrSlug string) (*dto.GigResponse, error) {
	gig, err := s.findGig(idOrSlug)
	if err != nil {
		return nil, err
	}

	// View counting is best-effort and must not slow down reads.
	go func(id string) {
		if err := s.gigRepo.IncrementViews(id); err != nil {
			logger.WithError(err).Warn("failed to increment gig views", "gig_id", id)
		}
	}(gig.ID)

	return toGigResponse(gig), nil
}

func (s *GigServiceImpl) ListGigs(criteria repositories.GigCriteria) (*dto.GigListResponse, error) {
	normalizePagination(&criteria.Page, &criteria.PageSize)
	if criteria.Status == "" {
		criteria.Status = string(models.GigStatusActive)
	}

	gigs, total, err := s.gigRepo.List(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.GigListResponse{
		Gigs:     make([]dto.GigResponse, 0, len(gigs)),
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}
	for i := range gigs {
		resp.Gigs = append(resp.Gigs, *toGigResponse(&gigs[i]))
	}
	return resp, nil
}

func (s *GigServiceImpl) ListMyGigs(creatorID string) ([]dto.GigResponse, error) {
	gigs, _, err := s.gigRepo.List(repositories.GigCriteria{
		CreatedBy: creatorID,
		Page:      1,
		PageSize:  100,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, *toGigResponse(&gigs[i]))
	}
	return out, nil
}

func (s *GigServiceImpl) UpdateGig(gigID, requesterID string, req *dto.UpdateGigRequest) (*dto.GigResponse, error) {
	gig, err := s.findOwnedGig(gigID, requesterID)
	if err != nil {
		return nil, err
	}

	if gig.Status != models.GigStatusActive {
		return nil, apperrors.ErrInvalidOperation("gig", "Only active gigs can be edited")
	}

	if req.Title != nil {
		gig.Title = *req.Title
	}
	if req.Description != nil {
		gig.Description = *req.Description
	}
	if req.BudgetMin != nil {
		gig.BudgetMin = req.BudgetMin
	}
	if req.BudgetMax != nil {
		gig.BudgetMax = req.BudgetMax
	}
	if req.Currency != nil {
		gig.Currency = strings.ToUpper(*req.Currency)
	}
	if req.IsRequestQuote != nil {
		gig.IsRequestQuote = *req.IsRequestQuote
	}
	if req.Categories != nil {
		data, err := json.Marshal(req.Categories)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		gig.Categories = datatypes.JSON(data)
	}
	if req.City != nil {
		gig.City = *req.City
	}
	if req.ExpiresAt != nil {
		gig.ExpiresAt = req.ExpiresAt
	}

	if gig.BudgetMin != nil && gig.BudgetMax != nil && *gig.BudgetMax < *gig.BudgetMin {
		return nil, apperrors.ErrInvalidOperation("gig", "Maximum budget cannot be below the minimum")
	}

	if err := s.gigRepo.Update(gig); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toGigResponse(gig), nil
}

func (s *GigServiceImpl) CloseGig(gigID, requesterID string) (*dto.GigResponse, error) {
	gig, err := s.findOwnedGig(gigID, requesterID)
	if err != nil {
		return nil, err
	}

	if gig.Status == models.GigStatusClosed {
		return toGigResponse(gig), nil
	}

	gig.Status = models.GigStatusClosed
	if err := s.gigRepo.Update(gig); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toGigResponse(gig), nil
}

func (s *GigServiceImpl) DeleteGig(gigID, requesterID string) error {
	if _, err := s.findOwnedGig(gigID, requesterID); err != nil {
		return err
	}

	if err := s.gigRepo.Delete(gigID); err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return apperrors.ErrNotFound(err, "Gig not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *GigServiceImpl) findGig(idOrSlug string) (*models.Gig, error) {
	var gig *models.Gig
	var err error
	if _, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		gig, err = s.gigRepo.FindByID(idOrSlug)
	} else {
		gig, err = s.gigRepo.FindBySlug(idOrSlug)
	}
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err, "Gig not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return gig, nil
}

func (s *GigServiceImpl) findOwnedGig(gigID, requesterID string) (*models.Gig, error) {
	gig, err := s.gigRepo.FindByID(gigID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err, "Gig not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if gig.CreatedBy != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return gig, nil
}

func toGigResponse(gig *models.Gig) *dto.GigResponse {
	return &dto.GigResponse{
		ID:             gig.ID,
		Slug:           gig.Slug,
		CreatedBy:      gig.CreatedBy,
		Title:          gig.Title,
		Description:    gig.Description,
		Status:         gig.Status,
		ExpiresAt:      gig.ExpiresAt,
		BudgetMin:      gig.BudgetMin,
		BudgetMax:      gig.BudgetMax,
		Currency:       gig.Currency,
		IsRequestQuote: gig.IsRequestQuote,
		Categories:     decodeStringList(gig.Categories),
		City:           gig.City,
		Views:          gig.Views,
		CreatedAt:      gig.CreatedAt,
	}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// generateSlug builds a URL slug from the title plus a short random
// suffix so title collisions never collide on the unique index.
func generateSlug(title string) string {
	base := slugCleaner.ReplaceAllString(strings.ToLower(title), "-")
	base = strings.Trim(base, "-")
	if len(base) > 60 {
		base = base[:60]
	}
	if base == "" {
		base = "gig"
	}

	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return base + "-" + uuid.NewString()[:6]
	}
	return base + "-" + hex.EncodeToString(suffix)
}

func normalizePagination(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = 20
	}
	if *pageSize > 100 {
		*pageSize = 100
	}
}
