package websocket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeConn struct {
	mu     sync.Mutex
	events []Event
	fail   bool
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.events = append(f.events, v.(Event))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) received() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event(nil), f.events...)
}

// stalledConn blocks every write until it is closed.
type stalledConn struct {
	release chan struct{}
	once    sync.Once
}

func newStalledConn() *stalledConn {
	return &stalledConn{release: make(chan struct{})}
}

func (s *stalledConn) WriteJSON(interface{}) error {
	<-s.release
	return errors.New("use of closed connection")
}

func (s *stalledConn) Close() error {
	s.once.Do(func() { close(s.release) })
	return nil
}

func (s *stalledConn) isClosed() bool {
	select {
	case <-s.release:
		return true
	default:
		return false
	}
}

func finishes(t *testing.T, what string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s did not return", what)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	alice, bob := &fakeConn{}, &fakeConn{}
	hub.Register(NewClient("alice", 1, alice))
	hub.Register(NewClient("bob", 2, bob))
	hub.Broadcast(Event{Type: "message", ClientID: "alice", Data: "hi"})

	waitFor(t, func() bool { return len(alice.received()) == 1 && len(bob.received()) == 1 })
	got := bob.received()[0]
	if got.Type != "message" || got.ClientID != "alice" || got.Data != "hi" {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestHubDropsBrokenClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	healthy, broken := &fakeConn{}, &fakeConn{fail: true}
	hub.Register(NewClient("healthy", 1, healthy))
	hub.Register(NewClient("broken", 1, broken))
	hub.Publish(1, "quiz_result", map[string]any{"quiz_id": 1})

	waitFor(t, func() bool { return hub.Count() == 1 })
	if !broken.isClosed() {
		t.Fatalf("expected broken connection to be closed")
	}
	waitFor(t, func() bool { return len(healthy.received()) == 1 })
	if healthy.received()[0].Type != "quiz_result" {
		t.Fatalf("unexpected event: %+v", healthy.received()[0])
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	conn := &fakeConn{}
	client := NewClient("carol", 3, conn)
	hub.Register(client)
	waitFor(t, func() bool { return hub.Count() == 1 })
	hub.Unregister(client)
	waitFor(t, func() bool { return hub.Count() == 0 })

	hub.Register(NewClient("dave", 4, &fakeConn{}))
	cancel()
	waitFor(t, func() bool { return hub.Count() == 0 })
}

func TestHubStalledClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	stalled := newStalledConn()
	hub.Register(NewClient("stalled", 1, stalled))
	hub.Publish(1, "quiz_result", 1)

	other := &fakeConn{}
	finishes(t, "Register", func() { hub.Register(NewClient("other", 2, other)) })
	hub.Broadcast(Event{Type: "message", Data: "hi"})
	waitFor(t, func() bool { return len(other.received()) == 1 })

	for i := 0; i < clientQueueSize+2; i++ {
		finishes(t, "Broadcast", func() { hub.Broadcast(Event{Type: "message", Data: i}) })
		waitFor(t, func() bool { return len(other.received()) == i+2 })
	}
	waitFor(t, stalled.isClosed)
	waitFor(t, func() bool { return hub.Count() == 1 })
}

func TestHubAfterShutdown(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	conn := &fakeConn{}
	client := NewClient("erin", 5, conn)
	hub.Register(client)
	cancel()
	<-stopped

	if !conn.isClosed() {
		t.Fatalf("expected open connections to be closed on shutdown")
	}
	finishes(t, "Unregister", func() { hub.Unregister(client) })
	finishes(t, "Broadcast", func() { hub.Broadcast(Event{Type: "message"}) })

	late := &fakeConn{}
	finishes(t, "Register", func() { hub.Register(NewClient("late", 6, late)) })
	if !late.isClosed() {
		t.Fatalf("expected a connection registered after shutdown to be closed")
	}
}

func TestHubPublishReachesOnlyOwner(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	owner, ownerTab, stranger := &fakeConn{}, &fakeConn{}, &fakeConn{}
	hub.Register(NewClient("owner", 1, owner))
	hub.Register(NewClient("owner-tab", 1, ownerTab))
	hub.Register(NewClient("stranger", 2, stranger))
	hub.Publish(1, "quiz_result", map[string]any{"user_score": 3})
	hub.Broadcast(Event{Type: "message", Data: "done"})

	waitFor(t, func() bool { return len(stranger.received()) == 1 })
	waitFor(t, func() bool { return len(owner.received()) == 2 && len(ownerTab.received()) == 2 })
	if got := stranger.received()[0]; got.Type != "message" {
		t.Fatalf("stranger must not see quiz results, got %+v", got)
	}
	if got := owner.received()[0]; got.Type != "quiz_result" {
		t.Fatalf("owner expected quiz_result first, got %+v", got)
	}
}
