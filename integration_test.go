//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/application"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/events"
)

// TestFavorites_PostgresAndEvents covers the favorite lifecycle against a real
// database: the unique index rejects duplicates and each mutation is published.
func TestFavorites_PostgresAndEvents(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupCatalogStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx := context.Background()
	userID := uuid.New()

	added, err := stack.Favorites.AddFavorite(ctx, userID, application.AddFavoriteRequest{BreedID: "akita", Memo: "first"})
	require.NoError(t, err)

	_, err = stack.Favorites.AddFavorite(ctx, userID, application.AddFavoriteRequest{BreedID: "akita"})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	memo := "second"
	_, err = stack.Favorites.UpdateMemo(ctx, userID, "akita", application.UpdateFavoriteRequest{Memo: &memo})
	require.NoError(t, err)

	got, err := stack.Favorites.GetFavorite(ctx, userID, "akita", false)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Memo)
	assert.Equal(t, added.ID, got.ID)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicFavoriteEvents, events.FavoriteAdded, 15*time.Second)
	var payload events.FavoriteEvent
	require.NoError(t, ce.ParseData(&payload))
	assert.Equal(t, userID, payload.UserID)
	assert.Equal(t, "akita", payload.BreedID)

	require.NoError(t, stack.Favorites.RemoveFavorite(ctx, userID, "akita"))
	consumeOneEvent(t, infra.KafkaBrokers, events.TopicFavoriteEvents, events.FavoriteRemoved, 15*time.Second)
}

// TestUserDeleted_PurgesUserData verifies that a user.deleted event removes the
// user's favorites and profile and leaves other users alone.
func TestUserDeleted_PurgesUserData(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupCatalogStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	for _, id := range []string{"akita", "beagle", "corgi"} {
		_, err := stack.Favorites.AddFavorite(ctx, userID, application.AddFavoriteRequest{BreedID: id})
		require.NoError(t, err)
	}
	_, err := stack.Favorites.AddFavorite(ctx, otherID, application.AddFavoriteRequest{BreedID: "akita"})
	require.NoError(t, err)

	_, err = stack.Profiles.UpsertProfile(ctx, userID, "leaving@example.com", application.UpdateProfileRequest{
		Username:    "leaving",
		DateOfBirth: "1988-07-01",
	})
	require.NoError(t, err)

	// Start the consumer.
	consumerCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = stack.Consumer.Start(consumerCtx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	publishTestEvent(t, infra.KafkaBrokers, events.TopicUserEvents,
		"service-identity", events.UserDeleted, userID.String(),
		events.UserDeletedEvent{UserID: userID, DeletedAt: time.Now().UTC()})

	waitForFavoriteCount(t, infra.DB, userID, 0, 15*time.Second)
	waitForFavoriteCount(t, infra.DB, otherID, 1, time.Second)

	require.Eventually(t, func() bool {
		_, err := stack.Profiles.GetProfile(ctx, userID)
		return domain.IsNotFound(err)
	}, 15*time.Second, 200*time.Millisecond, "profile was not removed")
}

// TestProfiles_UpsertRoundTrip checks the ON CONFLICT upsert keeps earlier
// fields when a later update omits them.
func TestProfiles_UpsertRoundTrip(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupCatalogStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ctx := context.Background()
	userID := uuid.New()
	yes := true

	_, err := stack.Profiles.UpsertProfile(ctx, userID, "a@example.com", application.UpdateProfileRequest{
		FirstName:        "Ada",
		DateOfBirth:      "1990-01-02",
		HasDogExperience: &yes,
	})
	require.NoError(t, err)

	_, err = stack.Profiles.UpsertProfile(ctx, userID, "", application.UpdateProfileRequest{FavoriteBreed: "akita"})
	require.NoError(t, err)

	got, err := stack.Profiles.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "akita", got.FavoriteBreed)
	assert.Equal(t, "a@example.com", got.Email)
	assert.True(t, got.HasDogExperience)
	require.NotNil(t, got.DateOfBirth)
	assert.Equal(t, "1990-01-02", *got.DateOfBirth)
}
