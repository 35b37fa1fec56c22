package stream

import "testing"

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	a := hub.Register()
	b := hub.Register()

	hub.Broadcast([]byte("snapshot"))

	for _, client := range []*Client{a, b} {
		select {
		case msg := <-client.Send:
			if string(msg) != "snapshot" {
				t.Fatalf("unexpected message %q", msg)
			}
		default:
			t.Fatalf("client did not receive broadcast")
		}
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	client := hub.Register()

	hub.Unregister(client)

	if _, ok := <-client.Send; ok {
		t.Fatalf("send channel should be closed")
	}

	// second unregister is a no-op, not a double close
	hub.Unregister(client)
}

func TestUnregisteredClientMissesBroadcast(t *testing.T) {
	hub := NewHub()
	gone := hub.Register()
	stays := hub.Register()
	hub.Unregister(gone)

	hub.Broadcast([]byte("x"))

	select {
	case <-stays.Send:
	default:
		t.Fatalf("remaining client should receive broadcast")
	}
}

func TestSlowClientDropsFrames(t *testing.T) {
	hub := NewHub()
	client := hub.Register()

	for i := 0; i < 100; i++ {
		hub.Broadcast([]byte("frame"))
	}

	// the buffer bounds what a stalled client can hold; nothing blocks
	if got := len(client.Send); got != cap(client.Send) {
		t.Fatalf("expected full buffer of %d, got %d", cap(client.Send), got)
	}
}
