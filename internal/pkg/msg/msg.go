package msg

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Topic classifies a message
type Topic int

// Constants of Topic
const (
	Calculation Topic = iota
	Project
)

func (t Topic) String() string {
	switch t {
	case Calculation:
		return "calculation"
	case Project:
		return "project"
	}
	return "unknown"
}

// Publisher is an interface for objects that allow subscribtion to their events
type Publisher interface {
	Subscribe(uuid.UUID, Topic) (<-chan Msg, error)
	Unsubscribe(uuid.UUID)
}

// Msg is the unit passed from a publisher to its subscribers
type Msg struct {
	sender  uuid.UUID
	topic   Topic
	payload interface{}
}

// New is the Msg factory function
func New(sender uuid.UUID, topic Topic, payload interface{}) Msg {
	return Msg{sender, topic, payload}
}

// PID returns the sender's PID
func (v Msg) PID() uuid.UUID {
	return v.sender
}

// Topic returns the message topic
func (v Msg) Topic() Topic {
	return v.topic
}

// Payload returns the message data
func (v Msg) Payload() interface{} {
	return v.payload
}

const subscriberBuffer = 50

// PubSub fans messages out to subscribers by topic
type PubSub struct {
	mux         *sync.Mutex
	pid         uuid.UUID
	subscribers map[Topic]map[uuid.UUID]chan Msg
	closed      bool
}

// NewPublisher returns a PubSub publishing as pid
func NewPublisher(pid uuid.UUID) *PubSub {
	return &PubSub{
		mux:         &sync.Mutex{},
		pid:         pid,
		subscribers: make(map[Topic]map[uuid.UUID]chan Msg),
	}
}

// PID returns the publisher's PID
func (p *PubSub) PID() uuid.UUID {
	return p.pid
}

// Subscribe returns a channel receiving every message published on topic.
func (p *PubSub) Subscribe(pid uuid.UUID, topic Topic) (<-chan Msg, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.closed {
		return nil, errors.New("publisher is closed")
	}
	subs, ok := p.subscribers[topic]
	if !ok {
		subs = make(map[uuid.UUID]chan Msg)
		p.subscribers[topic] = subs
	}
	if _, exists := subs[pid]; exists {
		return nil, errors.New("pid is already subscribed to topic " + topic.String())
	}
	ch := make(chan Msg, subscriberBuffer)
	subs[pid] = ch
	return ch, nil
}

// Unsubscribe closes every channel held by pid
func (p *PubSub) Unsubscribe(pid uuid.UUID) {
	p.mux.Lock()
	defer p.mux.Unlock()
	for _, subs := range p.subscribers {
		if ch, ok := subs[pid]; ok {
			delete(subs, pid)
			close(ch)
		}
	}
}

// Publish sends payload to the topic's subscribers. Subscribers that are
// not keeping up miss the message.
func (p *PubSub) Publish(topic Topic, payload interface{}) {
	p.mux.Lock()
	defer p.mux.Unlock()
	m := New(p.pid, topic, payload)
	for _, ch := range p.subscribers[topic] {
		select {
		case ch <- m:
		default:
		}
	}
}

// Close unsubscribes everyone and refuses new subscriptions
func (p *PubSub) Close() {
	p.mux.Lock()
	defer p.mux.Unlock()
	for _, subs := range p.subscribers {
		for pid, ch := range subs {
			delete(subs, pid)
			close(ch)
		}
	}
	p.closed = true
}

// Lifecycle pairs a handler's Process goroutine with its Stop. Stop may be
// called before Process starts, or without it ever starting.
type Lifecycle struct {
	mux     *sync.Mutex
	started bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
}

// NewLifecycle returns a Lifecycle that is neither started nor stopped.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		mux:  &sync.Mutex{},
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start marks the process running. It returns false if the lifecycle was
// already started or stopped, in which case the caller must return.
func (l *Lifecycle) Start() bool {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.started || l.stopped {
		return false
	}
	l.started = true
	return true
}

// Stopping is closed once Stop is called.
func (l *Lifecycle) Stopping() <-chan struct{} {
	return l.stop
}

// Done is called by the process as it exits.
func (l *Lifecycle) Done() {
	close(l.done)
}

// Stop signals the process and waits for it to exit if it was started.
func (l *Lifecycle) Stop() {
	l.mux.Lock()
	if l.stopped {
		l.mux.Unlock()
		return
	}
	l.stopped = true
	close(l.stop)
	started := l.started
	l.mux.Unlock()

	if started {
		<-l.done
	}
}
