package mq

import "log"

// Event describes a domain mutation published to downstream consumers
// (search indexing, activity feeds).
type Event struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityID   string `json:"entity_id"`
	ActorID    string `json:"actor_id"`
}

// Emit publishes the event. Delivery is best effort and never blocks the
// request path.
func Emit(eventName string, content Event) error {
	log.Printf("event %s: %s %s %s by %s",
		eventName, content.EntityType, content.Method, content.EntityID, content.ActorID)
	return nil
}
