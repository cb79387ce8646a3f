package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/application"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/events"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/kafka"
)

// UserEventConsumer listens to account events and removes the data a deleted
// user leaves behind.
type UserEventConsumer struct {
	consumer  *kafka.Consumer
	favorites *application.FavoriteService
	profiles  *application.ProfileService
	logger    *zap.Logger
}

// NewUserEventConsumer creates a new UserEventConsumer.
func NewUserEventConsumer(
	brokers []string,
	groupID string,
	favorites *application.FavoriteService,
	profiles *application.ProfileService,
	logger *zap.Logger,
) *UserEventConsumer {
	c := newUserEventHandler(favorites, profiles, logger)
	c.consumer = kafka.NewConsumer(brokers, groupID, events.TopicUserEvents, logger)
	return c
}

func newUserEventHandler(
	favorites *application.FavoriteService,
	profiles *application.ProfileService,
	logger *zap.Logger,
) *UserEventConsumer {
	return &UserEventConsumer{favorites: favorites, profiles: profiles, logger: logger}
}

// Start begins consuming user events. This blocks until the context is cancelled.
func (c *UserEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *UserEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *UserEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from user topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.UserDeleted:
		return c.handleUserDeleted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled user event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *UserEventConsumer) handleUserDeleted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.UserDeletedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse UserDeletedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing user deleted event",
		zap.String("user_id", evt.UserID.String()),
	)

	removed, err := c.favorites.RemoveAllForUser(ctx, evt.UserID)
	if err != nil {
		c.logger.Error("failed to remove favorites of deleted user",
			zap.String("user_id", evt.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	if err := c.profiles.DeleteProfile(ctx, evt.UserID); err != nil {
		c.logger.Error("failed to remove profile of deleted user",
			zap.String("user_id", evt.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("user data removed",
		zap.String("user_id", evt.UserID.String()),
		zap.Int64("favorites_removed", removed),
	)
	return nil
}
