// Package events defines the topics, CloudEvent types and payloads exchanged
// over Kafka by the breed catalog service.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicFavoriteEvents = "favorite.events"
	TopicUserEvents     = "user.events"
)

// Favorite event types.
const (
	FavoriteAdded   = "favorite.added"
	FavoriteUpdated = "favorite.updated"
	FavoriteRemoved = "favorite.removed"
)

// User event types.
const (
	UserDeleted = "user.deleted"
)

// FavoriteEvent is the payload of every favorite.* event.
type FavoriteEvent struct {
	FavoriteID uuid.UUID `json:"favorite_id"`
	UserID     uuid.UUID `json:"user_id"`
	BreedID    string    `json:"breed_id"`
	Memo       string    `json:"memo,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserDeletedEvent is published by the identity service when an account is removed.
type UserDeletedEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
