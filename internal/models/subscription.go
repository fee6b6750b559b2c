package models

import "time"

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Frequencies lists the delivery frequencies offered by the panel, default first.
var Frequencies = []string{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

type Subscription struct {
	ID        int        `json:"id"`
	Topic     string     `json:"topic"`
	Email     string     `json:"email"`
	Frequency string     `json:"frequency"`
	CreatedAt time.Time  `json:"created_at"`
	IsActive  bool       `json:"is_active"`
	LastSent  *time.Time `json:"last_sent"`
}

// UserSubData is the body of POST /api/subscriptions.
type UserSubData struct {
	Topic     string `json:"topic"`
	Email     string `json:"email"`
	Frequency string `json:"frequency"`
}

// MissingField reports the first required field left empty, in the order topic, email, frequency.
func (d UserSubData) MissingField() string {
	switch {
	case d.Topic == "":
		return "topic"
	case d.Email == "":
		return "email"
	case d.Frequency == "":
		return "frequency"
	}
	return ""
}

type SubscriptionStatus struct {
	ID            int        `json:"id"`
	Email         string     `json:"email"`
	Topic         string     `json:"topic"`
	Frequency     string     `json:"frequency"`
	LastSent      *time.Time `json:"last_sent"`
	ShouldSendNow bool       `json:"should_send_now"`
	CreatedAt     time.Time  `json:"created_at"`
}

var frequencyIntervals = map[string]time.Duration{
	FrequencyDaily:   24 * time.Hour,
	FrequencyWeekly:  168 * time.Hour,
	FrequencyMonthly: 720 * time.Hour,
}

// FrequencyInterval is the minimum time between two newsletters. Unknown frequencies count as daily.
func FrequencyInterval(frequency string) time.Duration {
	if d, ok := frequencyIntervals[frequency]; ok {
		return d
	}
	return frequencyIntervals[FrequencyDaily]
}

// ShouldSend reports whether a newsletter is due at now.
func (s Subscription) ShouldSend(now time.Time) bool {
	if s.LastSent == nil {
		return true
	}
	return now.Sub(*s.LastSent) >= FrequencyInterval(s.Frequency)
}
