package services

import (
	"net/http"
	"testing"

	"heyprodata_backend/internal/models"
	"heyprodata_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture(t *testing.T) (ProfileService, *fakeProfileRepo) {
	t.Helper()
	profiles := newFakeProfileRepo()
	users := newFakeUserRepo()
	return NewProfileService(profiles, users), profiles
}

func TestGetProfileRedactsContactForOthers(t *testing.T) {
	svc, profiles := newProfileFixture(t)

	profile := completeProfile(aliceID, "Alice Tan")
	profile.ContactPhone = "+49 170 000000"
	require.NoError(t, profiles.Create(profile))

	own, err := svc.GetProfile(aliceID, aliceID)
	require.NoError(t, err)
	assert.NotEmpty(t, own.ContactEmail)
	assert.Equal(t, "+49 170 000000", own.ContactPhone)
	assert.True(t, own.IsComplete)

	other, err := svc.GetProfile(aliceID, bobID)
	require.NoError(t, err)
	assert.Empty(t, other.ContactEmail)
	assert.Empty(t, other.ContactPhone)
	assert.Equal(t, "Alice Tan", other.DisplayName)
}

func TestGetPrivateProfileHidden(t *testing.T) {
	svc, profiles := newProfileFixture(t)

	profile := completeProfile(aliceID, "Alice Tan")
	profile.IsPublic = false
	require.NoError(t, profiles.Create(profile))

	// The owner still sees it.
	_, err := svc.GetProfile(aliceID, aliceID)
	require.NoError(t, err)

	// Everyone else gets a 404.
	_, err = svc.GetProfile(aliceID, bobID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestUpdateProfilePatchesFields(t *testing.T) {
	svc, profiles := newProfileFixture(t)

	require.NoError(t, profiles.Create(&models.Profile{UserID: aliceID, DisplayName: "Alice"}))

	resp, err := svc.UpdateProfile(aliceID, &dto.UpdateProfileRequest{
		Discipline: strPtr("photographer"),
		City:       strPtr("Berlin"),
		Bio:        strPtr("Editorial and campaign work."),
		Skills:     []string{"lighting", "retouching"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.DisplayName) // untouched
	assert.Equal(t, "photographer", resp.Discipline)
	assert.Equal(t, []string{"lighting", "retouching"}, resp.Skills)
	assert.True(t, resp.IsComplete)
}

func TestCheckCompleteness(t *testing.T) {
	svc, profiles := newProfileFixture(t)

	require.NoError(t, profiles.Create(&models.Profile{UserID: aliceID, DisplayName: "Alice"}))

	result, err := svc.CheckCompleteness(aliceID)
	require.NoError(t, err)
	assert.False(t, result.IsComplete)
	assert.Equal(t, []string{"discipline", "city", "bio"}, result.MissingFields)

	_, err = svc.UpdateProfile(aliceID, &dto.UpdateProfileRequest{
		Discipline: strPtr("photographer"),
		City:       strPtr("Berlin"),
		Bio:        strPtr("Editorial and campaign work."),
	})
	require.NoError(t, err)

	result, err = svc.CheckCompleteness(aliceID)
	require.NoError(t, err)
	assert.True(t, result.IsComplete)
	assert.Empty(t, result.MissingFields)
}

func TestUpdateMissingProfile(t *testing.T) {
	svc, _ := newProfileFixture(t)

	_, err := svc.UpdateProfile("ghost", &dto.UpdateProfileRequest{City: strPtr("Nowhere")})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}
