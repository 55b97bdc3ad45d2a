package events

// Subscription is a handle to a registered listener.
//
// Subscriptions are returned by On and Once and should be kept if the
// listener needs to be removed later. Each handle unsubscribes once;
// further calls return ErrAlreadyUnsubscribed.
//
// Example:
//
//	sub, err := emitter.On("user.created", onUserCreated)
//	if err != nil {
//	    return err
//	}
//
//	// Later
//	if err := sub.Unsubscribe(); err != nil {
//	    log.Printf("unsubscribe: %v", err)
//	}
type Subscription struct {
	// remove performs the actual unregistration. Cleared after the first
	// call so the handle cannot remove anything twice.
	remove func() error
	id     string
	event  Key
}

// ID returns the listener's unique identifier.
func (s *Subscription) ID() string { return s.id }

// Event returns the event key the listener was registered for.
func (s *Subscription) Event() Key { return s.event }

// Unsubscribe removes the listener from its event.
//
// Returns:
//   - nil: listener removed
//   - ErrAlreadyUnsubscribed: handle already used, or never valid
//   - ErrListenerNotFound: listener was removed by Clear or Destroy
func (s *Subscription) Unsubscribe() error {
	if s.remove == nil {
		return ErrAlreadyUnsubscribed
	}
	err := s.remove()
	s.remove = nil
	return err
}
