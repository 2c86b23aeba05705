package notifier

type EventType string

// Event catalog. Every event goes to every connected client, so
// payloads must only carry data a bystander may see.
const (
	EventUserRegistered    EventType = "user_registered"
	EventUserStatusChanged EventType = "user_status_changed"
	EventPostUpdate        EventType = "post_update"
	EventMessageUpdate     EventType = "message_update"
)

// Event is the wire envelope broadcast to websocket clients.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// StatusChange is the payload of user_status_changed events.
type StatusChange struct {
	UserID uint   `json:"user_id"`
	Status string `json:"status"` // approved, rejected, banned, unbanned
}
