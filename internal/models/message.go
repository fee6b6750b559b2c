package models

import "encoding/json"

const ActionSubscribe = "subscribe"

// RuntimeMessage is a message sent to the background listener by an extension page.
type RuntimeMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}
