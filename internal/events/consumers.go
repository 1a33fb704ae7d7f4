package events

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlinks/internal/messaging"
	"go.uber.org/zap"
)

// RegisterConsumers adds one consumer per lifecycle topic to group, all feeding sink.
func RegisterConsumers(
	group *messaging.ConsumerGroup,
	subscriber message.Subscriber,
	sink Sink,
	logger *zap.Logger,
) {
	group.Add(messaging.NewConsumer(subscriber, TopicLinkCreated, sink.LinkCreated, logger))
	group.Add(messaging.NewConsumer(subscriber, TopicExpiredLinkHit, sink.ExpiredLinkHit, logger))
}
