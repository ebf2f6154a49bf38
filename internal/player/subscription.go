package player

import "sync"

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	Events <-chan Event
	Errors <-chan ErrorEvent
	Done   <-chan struct{}

	eventCh chan Event
	errorCh chan ErrorEvent
	doneCh  chan struct{}
	once    sync.Once
}

func newSubscription() *Subscription {
	s := &Subscription{
		eventCh: make(chan Event, eventBufferSize),
		errorCh: make(chan ErrorEvent, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.Events = s.eventCh
	s.Errors = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals the subscriber to stop. Safe to call more than once.
func (s *Subscription) close() {
	s.once.Do(func() { close(s.doneCh) })
}

// sendEvent sends an event (non-blocking, dropped if the buffer is full).
func (s *Subscription) sendEvent(e Event) {
	select {
	case s.eventCh <- e:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}

// subscribers is the subscription list shared by Player and Mock.
// Callers synchronize access.
type subscribers []*Subscription

func (l *subscribers) add() *Subscription {
	s := newSubscription()
	*l = append(*l, s)
	return s
}

func (l *subscribers) remove(sub *Subscription) {
	for i, s := range *l {
		if s == sub {
			*l = append((*l)[:i], (*l)[i+1:]...)
			break
		}
	}
	if sub != nil {
		sub.close()
	}
}

func (l *subscribers) closeAll() {
	for _, s := range *l {
		s.close()
	}
	*l = nil
}

func (l subscribers) event(e Event) {
	for _, s := range l {
		s.sendEvent(e)
	}
}

func (l subscribers) error(e ErrorEvent) {
	for _, s := range l {
		s.sendError(e)
	}
}
