package worker

// Subscriber attaches its event handlers to the shared dispatcher.
type Subscriber interface {
	RegisterHandlers()
}

// StartSubscribers registers handlers for every subscriber in the given
// order; the dispatcher invokes handlers in registration order.
func StartSubscribers(subscribers ...Subscriber) {
	for _, s := range subscribers {
		if s == nil {
			continue
		}
		s.RegisterHandlers()
	}
}
