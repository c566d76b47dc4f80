package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/SscSPs/crew_ledger/internal/middleware"
	"github.com/SscSPs/crew_ledger/internal/notify"
	"github.com/gin-gonic/gin"
)

const sseHeartbeatInterval = 15 * time.Second

type eventsHandler struct {
	bus       *notify.Bus
	channels  []string
	buffer    int
	heartbeat time.Duration
}

func registerEventRoutes(rg *gin.RouterGroup, bus *notify.Bus, channels []string, buffer int) {
	h := &eventsHandler{bus: bus, channels: channels, buffer: buffer, heartbeat: sseHeartbeatInterval}
	rg.GET("/events", h.streamEvents)
}

// streamEvents godoc
// @Summary Stream change notifications
// @Description Streams database change events of one channel as Server-Sent Events
// @Tags events
// @Produce  text/event-stream
// @Param   channel query string true "Channel name, e.g. order_updates or settings_updates"
// @Success 200 {object} notify.Event
// @Failure 400 {object} map[string]string "Unknown channel"
// @Security BearerAuth
// @Router /events [get]
func (h *eventsHandler) streamEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	channel := c.Query("channel")
	if !slices.Contains(h.channels, channel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown channel", "channels": h.channels})
		return
	}

	sub := h.bus.Subscribe(channel, h.buffer)
	defer sub.Close()
	logger.Info("Event stream opened", slog.String("channel", channel))

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case evt, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(evt.Channel, evt)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
	logger.Info("Event stream closed", slog.String("channel", channel))
}
