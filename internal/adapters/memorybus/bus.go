package memorybus

import (
	"strings"
	"sync"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/ports"
)

const bufferSize = 64

type subscriber struct {
	ch       chan ports.Event
	prefixes []string
}

func (s subscriber) wants(topic string) bool {
	if len(s.prefixes) == 0 {
		return true
	}
	for _, p := range s.prefixes {
		if strings.HasPrefix(topic, p) {
			return true
		}
	}
	return false
}

// Bus fans events out to in-process subscribers (SSE clients, CLI watchers).
type Bus struct {
	mu     sync.Mutex
	subs   map[chan ports.Event]subscriber
	closed bool
}

func New() *Bus {
	return &Bus{subs: make(map[chan ports.Event]subscriber)}
}

func (b *Bus) Publish(topic string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	evt := ports.Event{Topic: topic, Payload: payload}
	for ch, sub := range b.subs {
		if !sub.wants(topic) {
			continue
		}
		select {
		case ch <- evt:
		default:
			// drop si le client est trop lent
		}
	}
}

func (b *Bus) Subscribe(prefixes ...string) (<-chan ports.Event, func()) {
	ch := make(chan ports.Event, bufferSize)
	b.mu.Lock()
	if b.closed {
		close(ch)
		b.mu.Unlock()
		return ch, func() {}
	}
	b.subs[ch] = subscriber{ch: ch, prefixes: prefixes}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Close ends every subscription; later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
