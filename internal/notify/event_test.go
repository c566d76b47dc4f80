package notify_test

import (
	"testing"
	"time"

	"github.com/SscSPs/crew_ledger/internal/notify"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDecodeNotification(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		payload string
		want    any
	}{
		{"order update", `{"order_id":"o-1","status":"work"}`, map[string]any{"order_id": "o-1", "status": "work"}},
		{"setting update", `{"key":"company_name","value":"Acme"}`, map[string]any{"key": "company_name", "value": "Acme"}},
		{"malformed json", `{"order_id":`, `{"order_id":`},
		{"plain text", "hello", "hello"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evt := notify.DecodeNotification(&pgconn.Notification{Channel: notify.ChannelOrderUpdates, Payload: tc.payload}, at)
			assert.Equal(t, notify.ChannelOrderUpdates, evt.Channel)
			assert.Equal(t, tc.want, evt.Data)
			assert.Equal(t, at, evt.ReceivedAt)
		})
	}
}
