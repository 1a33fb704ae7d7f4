package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlinks/internal/messaging"
)

// Publishers holds the typed publish functions for every lifecycle topic.
type Publishers struct {
	LinkCreated    messaging.Publish[LinkCreated]
	ExpiredLinkHit messaging.Publish[ExpiredLinkHit]
}

// NewPublishers binds each topic to publisher.
func NewPublishers(publisher message.Publisher) Publishers {
	return Publishers{
		LinkCreated:    messaging.NewPublishFunc[LinkCreated](publisher, TopicLinkCreated),
		ExpiredLinkHit: messaging.NewPublishFunc[ExpiredLinkHit](publisher, TopicExpiredLinkHit),
	}
}

// NopPublishers discards every event.
func NopPublishers() Publishers {
	return Publishers{
		LinkCreated:    func(context.Context, *LinkCreated) error { return nil },
		ExpiredLinkHit: func(context.Context, *ExpiredLinkHit) error { return nil },
	}
}
