package repositories

import (
	"errors"
	"time"

	"heyprodata_backend/internal/models"

	"gorm.io/gorm"
)

var ErrGigNotFound = errors.New("gig not found")

// GigCriteria filters the public gig listing.
type GigCriteria struct {
	Status    string `form:"status"`
	City      string `form:"city"`
	Category  string `form:"category"`
	CreatedBy string `form:"-"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

type GigRepository interface {
	Create(gig *models.Gig) error
	FindByID(id string) (*models.Gig, error)
	FindBySlug(slug string) (*models.Gig, error)
	Update(gig *models.Gig) error
	// Delete removes the gig together with its applications.
	Delete(id string) error
	List(criteria GigCriteria) ([]models.Gig, int64, error)
	IncrementViews(id string) error
	ExpireOverdue(now time.Time) (int64, error)
}

type GigRepositoryImpl struct {
	db *gorm.DB
}

func NewGigRepository(db *gorm.DB) GigRepository {
	return &GigRepositoryImpl{db: db}
}

func (r *GigRepositoryImpl) Create(gig *models.Gig) error {
	return r.db.Create(gig).Error
}

func (r *GigRepositoryImpl) FindByID(id string) (*models.Gig, error) {
	var gig models.Gig
	err := r.db.First(&gig, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (r *GigRepositoryImpl) FindBySlug(slug string) (*models.Gig, error) {
	var gig models.Gig
	err := r.db.First(&gig, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (r *GigRepositoryImpl) Update(gig *models.Gig) error {
	return r.db.Save(gig).Error
}

func (r *GigRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gig_id = ?", id).Delete(&models.GigApplication{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Gig{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGigNotFound
		}
		return nil
	})
}

func (r *GigRepositoryImpl) List(criteria GigCriteria) ([]models.Gig, int64, error) {
	var gigs []models.Gig
	query := r.db.Model(&models.Gig{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}
	if criteria.Category != "" {
		query = query.Where("categories @> ?", `["`+criteria.Category+`"]`)
	}
	if criteria.CreatedBy != "" {
		query = query.Where("created_by = ?", criteria.CreatedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&gigs).Error

	return gigs, total, err
}

func (r *GigRepositoryImpl) IncrementViews(id string) error {
	return r.db.Model(&models.Gig{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// ExpireOverdue flips active gigs whose expiry has passed. Used by the
// background worker.
func (r *GigRepositoryImpl) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Gig{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.GigStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.GigStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
