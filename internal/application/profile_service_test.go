package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

func TestGetProfile_NotFound(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepo(), zap.NewNop())

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.True(t, domain.IsNotFound(err))
}

func TestUpsertProfile_CreatesThenMerges(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepo(), zap.NewNop())
	userID := uuid.New()
	ctx := context.Background()
	yes := true

	created, err := svc.UpsertProfile(ctx, userID, "dog@example.com", UpdateProfileRequest{
		Username:         "rex",
		FirstName:        "Rex",
		DateOfBirth:      "1990-04-12",
		HasDogExperience: &yes,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, created.ID)
	assert.Equal(t, "dog@example.com", created.Email)
	require.NotNil(t, created.DateOfBirth)
	assert.Equal(t, "1990-04-12", *created.DateOfBirth)
	assert.True(t, created.HasDogExperience)

	no := false
	updated, err := svc.UpsertProfile(ctx, userID, "", UpdateProfileRequest{
		FavoriteBreed:    "akita",
		HasDogExperience: &no,
	})
	require.NoError(t, err)
	assert.Equal(t, "rex", updated.Username)
	assert.Equal(t, "Rex", updated.FirstName)
	assert.Equal(t, "akita", updated.FavoriteBreed)
	assert.Equal(t, "dog@example.com", updated.Email)
	assert.False(t, updated.HasDogExperience)

	got, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)
}

func TestUpsertProfile_RejectsBadDates(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepo(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.UpsertProfile(ctx, uuid.New(), "", UpdateProfileRequest{DateOfBirth: "12/04/1990"})
	assert.True(t, domain.IsValidation(err))

	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	_, err = svc.UpsertProfile(ctx, uuid.New(), "", UpdateProfileRequest{DateOfBirth: future})
	assert.True(t, domain.IsValidation(err))
}

func TestDeleteProfile(t *testing.T) {
	svc := NewProfileService(memory.NewProfileRepo(), zap.NewNop())
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.UpsertProfile(ctx, userID, "a@example.com", UpdateProfileRequest{})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProfile(ctx, userID))
	require.NoError(t, svc.DeleteProfile(ctx, userID))

	_, err = svc.GetProfile(ctx, userID)
	assert.True(t, domain.IsNotFound(err))
}
