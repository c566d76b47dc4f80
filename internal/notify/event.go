package notify

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Well-known channels written by database triggers.
const (
	ChannelOrderUpdates    = "order_updates"
	ChannelSettingsUpdates = "settings_updates"
)

// Event is one database notification as seen by subscribers.
// Data holds the decoded JSON payload, or the raw payload string when it is not valid JSON.
type Event struct {
	Channel    string    `json:"channel"`
	Data       any       `json:"data"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// DecodeNotification converts a Postgres notification into an Event.
func DecodeNotification(n *pgconn.Notification, receivedAt time.Time) Event {
	return Event{
		Channel:    n.Channel,
		Data:       decodePayload(n.Payload),
		ReceivedAt: receivedAt,
	}
}

func decodePayload(payload string) any {
	var data any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return payload
	}
	return data
}
