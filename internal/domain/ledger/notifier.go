package ledger

import "context"

// Handler is called after a grade has been stored. It receives the ledger
// that changed and nothing else.
type Handler func(ctx context.Context, l Ledger) error

// Subscription identifies one registered handler. The zero value never
// matches a live subscription.
type Subscription uint64

type subscriber struct {
	id      Subscription
	handler Handler
}

// Notifier is the ordered subscriber list a ledger owns.
//
// Handlers run synchronously, in registration order, on the goroutine that
// called AddGrade. The first handler error stops the loop and is returned
// unchanged; later handlers do not see that event.
type Notifier struct {
	subscribers []subscriber
	lastID      Subscription
}

// Subscribe registers h and returns its handle. A nil handler is ignored.
func (n *Notifier) Subscribe(h Handler) Subscription {
	if h == nil {
		return 0
	}
	n.lastID++
	n.subscribers = append(n.subscribers, subscriber{id: n.lastID, handler: h})
	return n.lastID
}

// Unsubscribe removes the handler behind s. Unknown handles are a no-op.
func (n *Notifier) Unsubscribe(s Subscription) {
	for i, sub := range n.subscribers {
		if sub.id == s {
			n.subscribers = append(n.subscribers[:i:i], n.subscribers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live subscriptions.
func (n *Notifier) Len() int {
	return len(n.subscribers)
}

// Notify invokes every handler registered at the time of the call.
func (n *Notifier) Notify(ctx context.Context, l Ledger) error {
	if len(n.subscribers) == 0 {
		return nil
	}

	// Handlers may unsubscribe themselves; iterate a snapshot.
	subs := make([]subscriber, len(n.subscribers))
	copy(subs, n.subscribers)

	for _, sub := range subs {
		if err := sub.handler(ctx, l); err != nil {
			return err
		}
	}
	return nil
}
