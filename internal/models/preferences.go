package models

// SubscriptionRequest is what the panel posts to the subscription API.
type SubscriptionRequest struct {
	Topic     string `json:"topic"`
	Frequency string `json:"frequency"`
	Email     string `json:"email"`
}

// SavedPreferences is the subset of the last submission kept in the synced store.
type SavedPreferences struct {
	LastEmail     string
	LastFrequency string
}

const (
	PrefLastEmail     = "lastEmail"
	PrefLastFrequency = "lastFrequency"
)
