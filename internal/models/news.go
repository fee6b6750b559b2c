package models

import "time"

type NewsItem struct {
	ID          int        `json:"id,omitempty"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	Topic       string     `json:"topic"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// WelcomeResult describes what happened after a subscription was created.
type WelcomeResult struct {
	Action    string `json:"action"`
	NewsCount int    `json:"news_count"`
	Message   string `json:"message"`
}

const (
	WelcomeSent            = "sent_welcome_email"
	WelcomeCollectedSent   = "collected_and_sent"
	WelcomeWaitForSchedule = "wait_for_schedule"
	WelcomeQueued          = "queued"
	WelcomeError           = "error"
)
