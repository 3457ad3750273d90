package log

import (
	"sync"
	"sync/atomic"
)

// Publisher is an [io.Writer] that copies every write to its subscribers.
//
// Each [Subscription] owns a bounded channel. When a subscriber falls behind
// its oldest pending entry is discarded, so writers never block on a slow
// reader such as a redrawing terminal UI. Safe for concurrent use.
type Publisher struct {
	subs    []*Subscription
	size    int
	mu      sync.Mutex
	stopped bool
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets how many entries a subscription holds before the
// oldest is discarded. Values below 1 become 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.size = max(n, 1)
	}
}

// NewPublisher creates a [Publisher]. Subscriptions hold 64 entries unless
// [WithBufferSize] says otherwise.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{size: 64}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Write delivers a copy of b to every live subscription and reports
// len(b), nil.
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return len(b), nil
	}

	entry := append([]byte(nil), b...)

	live := p.subs[:0]
	for _, s := range p.subs {
		if s.done.Load() {
			close(s.ch)

			continue
		}

		s.push(entry)
		live = append(live, s)
	}

	clear(p.subs[len(live):])
	p.subs = live

	return len(b), nil
}

// Subscribe registers a new [Subscription]. Subscribing to a closed
// Publisher yields an already closed channel.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := &Subscription{ch: make(chan []byte, p.size)}
	if p.stopped {
		close(s.ch)

		return s
	}

	p.subs = append(p.subs, s)

	return s
}

// Close closes every subscription channel. Later writes are discarded.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return nil
	}

	p.stopped = true
	for _, s := range p.subs {
		close(s.ch)
	}

	p.subs = nil

	return nil
}

// Subscription receives entries written to a [Publisher].
type Subscription struct {
	ch   chan []byte
	done atomic.Bool
}

// C returns the channel entries arrive on. It is closed after
// [Subscription.Close] once the Publisher next writes, or when the Publisher
// closes.
func (s *Subscription) C() <-chan []byte {
	return s.ch
}

// Close detaches the subscription.
func (s *Subscription) Close() {
	s.done.Store(true)
}

// push is called with the publisher lock held, so it is the only sender.
func (s *Subscription) push(entry []byte) {
	for {
		select {
		case s.ch <- entry:
			return
		default:
		}

		select {
		case <-s.ch:
		default:
		}
	}
}
