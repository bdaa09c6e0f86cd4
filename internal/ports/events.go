package ports

type EventBus interface {
	Publish(topic string, payload []byte)
	// Subscribe delivers events whose topic starts with one of prefixes;
	// no prefix means every event.
	Subscribe(prefixes ...string) (ch <-chan Event, cancel func())
}

type Event struct {
	Topic   string
	Payload []byte
}
