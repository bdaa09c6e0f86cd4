package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
	"github.com/rs/zerolog"
)

const defaultNotificationBacklog = 50

// Notification is one new episode seen by an update run.
type Notification struct {
	Name    string    `json:"name"`
	Episode int       `json:"episode"`
	At      time.Time `json:"at"`
}

// UpdateNotifier listens for bangumi.updated events and keeps the most
// recent ones, newest first.
type UpdateNotifier struct {
	logger  zerolog.Logger
	bus     ports.EventBus
	backlog int
	now     func() time.Time

	mu     sync.Mutex
	recent []Notification
}

func NewUpdateNotifier(logger zerolog.Logger, bus ports.EventBus, backlog int) *UpdateNotifier {
	if backlog <= 0 {
		backlog = defaultNotificationBacklog
	}
	return &UpdateNotifier{logger: logger, bus: bus, backlog: backlog, now: time.Now}
}

// Start subscribes before returning, so no event published afterwards is
// missed. The returned channel is closed once ctx is done.
func (n *UpdateNotifier) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if n == nil || n.bus == nil {
		close(done)
		return done
	}
	ch, cancel := n.bus.Subscribe("bangumi.updated")

	go func() {
		defer close(done)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				n.logger.Info().Msg("update notifier stopped")
				return
			case evt, ok := <-ch:
				if !ok {
					return
				}
				n.handleEvent(evt)
			}
		}
	}()
	return done
}

func (n *UpdateNotifier) handleEvent(evt ports.Event) {
	if evt.Topic != "bangumi.updated" {
		return
	}
	var b BangumiDTO
	if err := json.Unmarshal(evt.Payload, &b); err != nil || b.Name == "" {
		return
	}

	note := Notification{Name: b.Name, Episode: b.Episode, At: n.now()}
	n.logger.Info().Str("bangumi", note.Name).Int("episode", note.Episode).Msg("bangumi updated")

	n.mu.Lock()
	defer n.mu.Unlock()
	n.recent = append([]Notification{note}, n.recent...)
	if len(n.recent) > n.backlog {
		n.recent = n.recent[:n.backlog]
	}
}

// Recent returns a copy of the kept notifications, newest first.
func (n *UpdateNotifier) Recent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.recent...)
}
