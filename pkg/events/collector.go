package events

// EventCollector is embedded in aggregates to buffer the events raised while a
// command runs. It is not safe for concurrent use; aggregates are request scoped.
type EventCollector struct {
	events []DomainEvent
}

// Record appends one or more domain events.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.events = append(c.events, evts...)
}

// Events returns the buffered events without clearing them.
func (c *EventCollector) Events() []DomainEvent {
	return c.events
}

// ClearEvents returns the buffered events and resets the buffer.
func (c *EventCollector) ClearEvents() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
