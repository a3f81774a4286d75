package services

import (
	"encoding/json"
	"fmt"

	"heyprodata_backend/internal/logger"
	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"
	"heyprodata_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type ApplicationService interface {
	Apply(gigID, applicantID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	GetApplication(appID, requesterID string) (*dto.ApplicationResponse, error)
	ListByGig(gigID, requesterID string, status models.ApplicationStatus) (*dto.ApplicationListResponse, error)
	ListMine(applicantID string) (*dto.ApplicationListResponse, error)
	UpdateStatus(gigID, appID, requesterID string, newStatus models.ApplicationStatus) (*dto.ApplicationResponse, error)
	Withdraw(appID, requesterID string) error
}

type ApplicationServiceImpl struct {
	applicationRepo  repositories.ApplicationRepository
	gigRepo          repositories.GigRepository
	profileRepo      repositories.ProfileRepository
	uploadRepo       repositories.UploadRepository
	notificationRepo repositories.NotificationRepository
	now              nowFunc
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	gigRepo repositories.GigRepository,
	profileRepo repositories.ProfileRepository,
	uploadRepo repositories.UploadRepository,
	notificationRepo repositories.NotificationRepository,
) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		applicationRepo:  applicationRepo,
		gigRepo:          gigRepo,
		profileRepo:      profileRepo,
		uploadRepo:       uploadRepo,
		notificationRepo: notificationRepo,
		now:              defaultNow,
	}
}

// Apply runs the apply-gate checks in order: gig exists, gig open,
// not the creator's own gig, applicant profile complete, resume upload
// owned by the applicant, no prior application.
func (s *ApplicationServiceImpl) Apply(gigID, applicantID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	gig, err := s.gigRepo.FindByID(gigID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err, "Gig not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if !gig.AcceptsApplications(s.now()) {
		return nil, apperrors.ErrInvalidOperation("application", "This gig is no longer accepting applications")
	}

	if gig.CreatedBy == applicantID {
		return nil, apperrors.ErrInvalidOperation("application", "You cannot apply to your own gig")
	}

	profile, err := s.profileRepo.FindByUserID(applicantID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrIncompleteProfile
		}
		return nil, apperrors.InternalError(err)
	}
	if !profile.IsComplete() {
		return nil, apperrors.ErrIncompleteProfile
	}

	if req.ResumeUploadID != nil {
		upload, err := s.uploadRepo.FindByID(*req.ResumeUploadID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrUploadNotFound) {
				return nil, apperrors.ErrInvalidOperation("application", "Resume upload not found")
			}
			return nil, apperrors.InternalError(err)
		}
		if upload.UserID != applicantID {
			return nil, apperrors.ErrInvalidOperation("application", "Resume upload not found")
		}
	}

	if _, err := s.applicationRepo.FindByGigAndApplicant(gigID, applicantID); err == nil {
		return nil, apperrors.ErrInvalidOperation("application", "You have already applied to this gig")
	} else if !apperrors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	linksJSON, err := json.Marshal(req.PortfolioLinks)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	app := &models.GigApplication{
		GigID:           gigID,
		ApplicantUserID: applicantID,
		Status:          models.ApplicationStatusPending,
		CoverLetter:     req.CoverLetter,
		PortfolioLinks:  datatypes.JSON(linksJSON),
		ResumeUploadID:  req.ResumeUploadID,
	}

	if err := s.applicationRepo.Create(app); err != nil {
		if apperrors.Is(err, repositories.ErrApplicationAlreadyExists) {
			// Lost a race with a concurrent apply from the same user; the
			// unique index is the source of truth.
			return nil, apperrors.ErrInvalidOperation("application", "You have already applied to this gig")
		}
		return nil, apperrors.InternalError(err)
	}

	go s.notifyNewApplication(gig, app, profile.DisplayName)

	return toApplicationResponse(app, profile, false), nil
}

func (s *ApplicationServiceImpl) GetApplication(appID, requesterID string) (*dto.ApplicationResponse, error) {
	app, err := s.applicationRepo.FindByID(appID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err, "Application not found")
		}
		return nil, apperrors.InternalError(err)
	}

	gig, err := s.gigRepo.FindByID(app.GigID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	isCreator := gig.CreatedBy == requesterID
	if !isCreator && app.ApplicantUserID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	profile := s.lookupProfile(app.ApplicantUserID)
	return toApplicationResponse(app, profile, isCreator), nil
}

func (s *ApplicationServiceImpl) ListByGig(gigID, requesterID string, status models.ApplicationStatus) (*dto.ApplicationListResponse, error) {
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

	apps, err := s.applicationRepo.ListByGig(gigID, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats, err := s.applicationRepo.StatsByGig(gigID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ApplicationListResponse{
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
		Stats:        stats,
	}
	for i := range apps {
		profile := s.lookupProfile(apps[i].ApplicantUserID)
		resp.Applications = append(resp.Applications, *toApplicationResponse(&apps[i], profile, true))
	}
	return resp, nil
}

func (s *ApplicationServiceImpl) ListMine(applicantID string) (*dto.ApplicationListResponse, error) {
	apps, err := s.applicationRepo.ListByApplicant(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats, err := s.applicationRepo.StatsByApplicant(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ApplicationListResponse{
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
		Stats:        stats,
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, *toApplicationResponse(&apps[i], nil, false))
	}
	return resp, nil
}

// UpdateStatus moves an application through the lifecycle. Transitions
// are forward-only: pending → shortlisted → confirmed → released, with
// skips allowed and released terminal. A same-status request is a
// no-op that returns the current record.
func (s *ApplicationServiceImpl) UpdateStatus(gigID, appID, requesterID string, newStatus models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if !models.ValidApplicationStatus(newStatus) {
		return nil, apperrors.ErrInvalidStatus("application", fmt.Sprintf("Unknown application status '%s'", newStatus))
	}

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

	app, err := s.applicationRepo.FindByID(appID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err, "Application not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if app.GigID != gigID {
		return nil, apperrors.ErrNotFound(repositories.ErrApplicationNotFound, "Application not found")
	}

	profile := s.lookupProfile(app.ApplicantUserID)

	if app.Status == newStatus {
		// No-op: no write, no notification.
		return toApplicationResponse(app, profile, true), nil
	}

	if !models.CanTransitionApplication(app.Status, newStatus) {
		return nil, apperrors.ErrInvalidStatus("application",
			fmt.Sprintf("Cannot change application status from '%s' to '%s'", app.Status, newStatus))
	}

	if err := s.applicationRepo.UpdateStatus(appID, newStatus); err != nil {
		return nil, apperrors.InternalError(err)
	}

	go s.notifyStatusChange(gig, app.ApplicantUserID, requesterID, newStatus)

	updated, err := s.applicationRepo.FindByID(appID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toApplicationResponse(updated, profile, true), nil
}

// Withdraw deletes the applicant's own application while it is still
// pending. Once a creator has acted on it, it stays on the record.
func (s *ApplicationServiceImpl) Withdraw(appID, requesterID string) error {
	app, err := s.applicationRepo.FindByID(appID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrNotFound(err, "Application not found")
		}
		return apperrors.InternalError(err)
	}

	if app.ApplicantUserID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}

	if app.Status != models.ApplicationStatusPending {
		return apperrors.ErrInvalidOperation("application",
			fmt.Sprintf("Cannot withdraw an application with status '%s'", app.Status))
	}

	if err := s.applicationRepo.Delete(appID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ApplicationServiceImpl) lookupProfile(userID string) *models.Profile {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil
	}
	return profile
}

func (s *ApplicationServiceImpl) notifyNewApplication(gig *models.Gig, app *models.GigApplication, applicantName string) {
	if applicantName == "" {
		applicantName = "Someone"
	}
	err := s.notificationRepo.CreateNewApplicationNotification(
		gig.CreatedBy, app.ApplicantUserID, gig.ID, app.ID, applicantName, gig.Title)
	if err != nil {
		logger.WithError(err).Warn("failed to create new-application notification",
			"gig_id", gig.ID, "application_id", app.ID)
	}
}

func (s *ApplicationServiceImpl) notifyStatusChange(gig *models.Gig, applicantID, actorID string, status models.ApplicationStatus) {
	err := s.notificationRepo.CreateApplicationStatusNotification(
		applicantID, actorID, gig.ID, gig.Title, status)
	if err != nil {
		logger.WithError(err).Warn("failed to create status-change notification",
			"gig_id", gig.ID, "status", string(status))
	}
}

// toApplicationResponse maps the row to the API shape. The applicant's
// contact details come from the profile and are only included for the
// gig creator.
func toApplicationResponse(app *models.GigApplication, profile *models.Profile, includeContact bool) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:              app.ID,
		GigID:           app.GigID,
		ApplicantUserID: app.ApplicantUserID,
		Status:          app.Status,
		CoverLetter:     app.CoverLetter,
		PortfolioLinks:  decodeStringList(app.PortfolioLinks),
		ResumeUploadID:  app.ResumeUploadID,
		StatusChangedAt: app.StatusChangedAt,
		CreatedAt:       app.CreatedAt,
	}
	if profile != nil {
		resp.ApplicantName = profile.DisplayName
		if includeContact {
			resp.ContactEmail = profile.ContactEmail
			resp.ContactPhone = profile.ContactPhone
		}
	}
	return resp
}
