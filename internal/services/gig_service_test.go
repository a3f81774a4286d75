package services

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/repositories"
	"heyprodata_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func newGigService(t *testing.T) (GigService, *fakeGigRepo) {
	t.Helper()
	repo := newFakeGigRepo()
	return NewGigService(repo), repo
}

func gigRequest() *dto.CreateGigRequest {
	return &dto.CreateGigRequest{
		Title:      "Lookbook Photographer Needed",
		BudgetMin:  floatPtr(800),
		BudgetMax:  floatPtr(1200),
		Currency:   "eur",
		Categories: []string{"photography"},
		City:       "Berlin",
	}
}

func TestCreateGig(t *testing.T) {
	svc, _ := newGigService(t)

	resp, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)

	assert.Equal(t, models.GigStatusActive, resp.Status)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Regexp(t, regexp.MustCompile(`^lookbook-photographer-needed-[0-9a-f]{6}$`), resp.Slug)
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(defaultGigLifetime), *resp.ExpiresAt, time.Minute)
}

func TestCreateGigSlugUnique(t *testing.T) {
	svc, _ := newGigService(t)

	a, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)
	b, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)
	assert.NotEqual(t, a.Slug, b.Slug)
}

func TestCreateGigWithoutBudgetRejected(t *testing.T) {
	svc, _ := newGigService(t)

	req := &dto.CreateGigRequest{Title: "Retoucher wanted"}
	_, err := svc.CreateGig(creatorID, req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	// Request-quote gigs skip the budget requirement.
	req.IsRequestQuote = true
	resp, err := svc.CreateGig(creatorID, req)
	require.NoError(t, err)
	assert.True(t, resp.IsRequestQuote)
}

func TestGetGigByIDAndSlug(t *testing.T) {
	svc, _ := newGigService(t)

	created, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)

	byID, err := svc.GetGig(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Slug, byID.Slug)

	bySlug, err := svc.GetGig(created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = svc.GetGig("no-such-slug")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestListGigsDefaultsToActive(t *testing.T) {
	svc, _ := newGigService(t)

	active, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)

	closedReq := gigRequest()
	closedReq.Title = "Closed Casting"
	closed, err := svc.CreateGig(creatorID, closedReq)
	require.NoError(t, err)
	_, err = svc.CloseGig(closed.ID, creatorID)
	require.NoError(t, err)

	resp, err := svc.ListGigs(repositories.GigCriteria{})
	require.NoError(t, err)
	require.Len(t, resp.Gigs, 1)
	assert.Equal(t, active.ID, resp.Gigs[0].ID)

	// An explicit status filter overrides the default.
	resp, err = svc.ListGigs(repositories.GigCriteria{Status: string(models.GigStatusClosed)})
	require.NoError(t, err)
	require.Len(t, resp.Gigs, 1)
	assert.Equal(t, closed.ID, resp.Gigs[0].ID)

	// ListMyGigs includes closed gigs.
	mine, err := svc.ListMyGigs(creatorID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestUpdateGig(t *testing.T) {
	svc, _ := newGigService(t)

	created, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)

	resp, err := svc.UpdateGig(created.ID, creatorID, &dto.UpdateGigRequest{
		Title:     strPtr("Lookbook Photographer (updated)"),
		BudgetMax: floatPtr(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lookbook Photographer (updated)", resp.Title)
	assert.Equal(t, 1500.0, *resp.BudgetMax)
	assert.Equal(t, 800.0, *resp.BudgetMin)
}

func TestUpdateGigBudgetCrossCheck(t *testing.T) {
	svc, _ := newGigService(t)

	created, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)

	_, err = svc.UpdateGig(created.ID, creatorID, &dto.UpdateGigRequest{
		BudgetMax: floatPtr(100), // below the existing minimum of 800
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestUpdateGigOnlyCreator(t *testing.T) {
	svc, _ := newGigService(t)

	created, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)

	_, err = svc.UpdateGig(created.ID, "someone-else", &dto.UpdateGigRequest{Title: strPtr("Hijacked")})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))
}

func TestUpdateClosedGigRejected(t *testing.T) {
	svc, _ := newGigService(t)

	created, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)
	_, err = svc.CloseGig(created.ID, creatorID)
	require.NoError(t, err)

	_, err = svc.UpdateGig(created.ID, creatorID, &dto.UpdateGigRequest{Title: strPtr("Too late")})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestCloseGigIdempotent(t *testing.T) {
	svc, _ := newGigService(t)

	created, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)

	resp, err := svc.CloseGig(created.ID, creatorID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusClosed, resp.Status)

	resp, err = svc.CloseGig(created.ID, creatorID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusClosed, resp.Status)
}

func TestDeleteGig(t *testing.T) {
	svc, repo := newGigService(t)

	created, err := svc.CreateGig(creatorID, gigRequest())
	require.NoError(t, err)

	err = svc.DeleteGig(created.ID, "someone-else")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))

	require.NoError(t, svc.DeleteGig(created.ID, creatorID))
	_, err = repo.FindByID(created.ID)
	assert.ErrorIs(t, err, repositories.ErrGigNotFound)
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		title  string
		prefix string
	}{
		{"Fashion Week Casting!", "fashion-week-casting-"},
		{"  Löökbook / Shoot  ", "l-kbook-shoot-"},
		{"???", "gig-"},
	}
	for _, tt := range tests {
		slug := generateSlug(tt.title)
		assert.True(t, len(slug) > len(tt.prefix), "slug %q too short", slug)
		assert.Contains(t, slug, tt.prefix)
	}
}

func TestNormalizePagination(t *testing.T) {
	page, size := 0, 0
	normalizePagination(&page, &size)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = 3, 500
	normalizePagination(&page, &size)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, size)
}
