package notifier

// Broker decouples event publication from websocket delivery. Mutating
// operations publish and move on; delivery outcome never feeds back
// into the request.
type Broker interface {
	Publish(event Event) error
	Subscribe() (<-chan []byte, error)
	Close() error
}
