package notify

import (
	"log/slog"
	"sync"
)

// Bus fans events out to in-process subscribers keyed by channel name.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Bus struct {
	mu      sync.RWMutex
	subs    map[string]map[*Subscription]struct{}
	closed  bool
	logger  *slog.Logger
	metrics *Metrics
}

// Subscription receives the events of one channel until Close is called.
type Subscription struct {
	Channel string
	events  chan Event
	bus     *Bus
	once    sync.Once
}

func NewBus(logger *slog.Logger, metrics *Metrics) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subs:    make(map[string]map[*Subscription]struct{}),
		logger:  logger,
		metrics: metrics,
	}
}

// Subscribe registers a subscriber with the given buffer size.
// Subscribing to a closed bus yields an already closed subscription.
func (b *Bus) Subscribe(channel string, buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	sub := &Subscription{Channel: channel, events: make(chan Event, buffer), bus: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		sub.once.Do(func() { close(sub.events) })
		return sub
	}
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*Subscription]struct{})
	}
	b.subs[channel][sub] = struct{}{}
	return sub
}

// Publish delivers evt to every subscriber of evt.Channel and returns how many received it.
func (b *Bus) Publish(evt Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for sub := range b.subs[evt.Channel] {
		select {
		case sub.events <- evt:
			delivered++
		default:
			b.metrics.dropped(evt.Channel)
			b.logger.Warn("Dropping event for slow subscriber", slog.String("channel", evt.Channel))
		}
	}
	return delivered
}

// Subscribers returns the number of live subscriptions on channel.
func (b *Bus) Subscribers(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}

// Close ends every subscription. Later subscriptions are closed immediately.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for channel, subs := range b.subs {
		for sub := range subs {
			sub.once.Do(func() { close(sub.events) })
		}
		delete(b.subs, channel)
	}
}

// Events is closed once the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	if subs, ok := b.subs[s.Channel]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(b.subs, s.Channel)
		}
	}
	s.once.Do(func() { close(s.events) })
}
