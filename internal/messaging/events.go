package messaging

import "time"

const (
	ExchangeName                   = "news_collector"
	SubscriptionCreatedRoutingKey  = "subscription.created"
	SubscriptionCreatedQueueName   = "subscription_created_queue"
	contentTypeJSON                = "application/json"
	subscriptionCreatedEventSource = "api"
)

// SubscriptionCreatedEvent asks a worker to run the welcome flow for a new subscription.
type SubscriptionCreatedEvent struct {
	EventID        string    `json:"event_id"`
	Source         string    `json:"source"`
	SubscriptionID int       `json:"subscription_id"`
	Topic          string    `json:"topic"`
	Email          string    `json:"email"`
	Frequency      string    `json:"frequency"`
	CreatedAt      time.Time `json:"created_at"`
}
