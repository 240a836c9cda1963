package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(hub *Hub, userID, tripID int64) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, 8),
		userID: userID,
		tripID: tripID,
	}
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	c := testClient(hub, 1, 10)
	hub.register <- c

	assert.Eventually(t, func() bool { return hub.ClientCount(10) == 1 }, time.Second, 10*time.Millisecond)

	hub.unregister <- c
	assert.Eventually(t, func() bool { return hub.ClientCount(10) == 0 }, time.Second, 10*time.Millisecond)

	// The send channel is closed on unregister
	_, open := <-c.send
	assert.False(t, open)
}

func TestHubBroadcastReachesRoomMembersOnly(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	member := testClient(hub, 1, 10)
	otherRoom := testClient(hub, 2, 20)
	hub.register <- member
	hub.register <- otherRoom

	assert.Eventually(t, func() bool {
		return hub.ClientCount(10) == 1 && hub.ClientCount(20) == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastToTrip(&Message{Type: "message", TripID: 10, SenderID: 1, Content: "hello", Timestamp: time.Now()})

	select {
	case data := <-member.send:
		assert.Contains(t, string(data), `"content":"hello"`)
	case <-time.After(time.Second):
		t.Fatal("room member did not receive the broadcast")
	}

	select {
	case <-otherRoom.send:
		t.Fatal("client in another room received the broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	// Must not panic or block
	hub.BroadcastToTrip(&Message{Type: "message", TripID: 99, Content: "nobody home"})
	require.Equal(t, 0, hub.ClientCount(99))
}
