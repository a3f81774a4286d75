package repositories

import (
	"errors"
	"time"

	"heyprodata_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationAlreadyExists = errors.New("application already exists")
)

type ApplicationRepository interface {
	Create(app *models.GigApplication) error
	FindByID(id string) (*models.GigApplication, error)
	FindByGigAndApplicant(gigID, applicantID string) (*models.GigApplication, error)
	ListByGig(gigID string, status models.ApplicationStatus) ([]models.GigApplication, error)
	ListByApplicant(applicantID string) ([]models.GigApplication, error)
	UpdateStatus(id string, status models.ApplicationStatus) error
	Delete(id string) error
	StatsByGig(gigID string) (*models.ApplicationStats, error)
	StatsByApplicant(applicantID string) (*models.ApplicationStats, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(app *models.GigApplication) error {
	err := r.db.Create(app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.GigApplication, error) {
	var app models.GigApplication
	err := r.db.First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByGigAndApplicant(gigID, applicantID string) (*models.GigApplication, error) {
	var app models.GigApplication
	err := r.db.First(&app, "gig_id = ? AND applicant_user_id = ?", gigID, applicantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) ListByGig(gigID string, status models.ApplicationStatus) ([]models.GigApplication, error) {
	var apps []models.GigApplication
	query := r.db.Where("gig_id = ?", gigID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) ListByApplicant(applicantID string) ([]models.GigApplication, error) {
	var apps []models.GigApplication
	err := r.db.Where("applicant_user_id = ?", applicantID).
		Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) UpdateStatus(id string, status models.ApplicationStatus) error {
	now := time.Now()
	result := r.db.Model(&models.GigApplication{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            status,
			"status_changed_at": now,
			"updated_at":        now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.GigApplication{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) StatsByGig(gigID string) (*models.ApplicationStats, error) {
	return r.stats(r.db.Model(&models.GigApplication{}).Where("gig_id = ?", gigID))
}

func (r *ApplicationRepositoryImpl) StatsByApplicant(applicantID string) (*models.ApplicationStats, error) {
	return r.stats(r.db.Model(&models.GigApplication{}).Where("applicant_user_id = ?", applicantID))
}

func (r *ApplicationRepositoryImpl) stats(query *gorm.DB) (*models.ApplicationStats, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Count  int64
	}
	err := query.Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var stats models.ApplicationStats
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.ApplicationStatusPending:
			stats.Pending = row.Count
		case models.ApplicationStatusShortlisted:
			stats.Shortlisted = row.Count
		case models.ApplicationStatusConfirmed:
			stats.Confirmed = row.Count
		case models.ApplicationStatusReleased:
			stats.Released = row.Count
		}
	}
	return &stats, nil
}
