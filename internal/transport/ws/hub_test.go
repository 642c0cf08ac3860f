package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestHub_BroadcastToSurvey(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	watching := &Connection{SurveyID: "s1", Send: make(chan []byte, 4), Hub: hub}
	elsewhere := &Connection{SurveyID: "s2", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(watching)
	hub.Register(elsewhere)
	waitFor(t, func() bool { return hub.Subscribers("s1") == 1 && hub.Subscribers("s2") == 1 })

	hub.BroadcastToSurvey("s1", string(MsgResponseSubmitted), map[string]string{"id": "r1"})

	select {
	case data := <-watching.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, MsgResponseSubmitted, msg.Type)
		assert.JSONEq(t, `{"id":"r1"}`, string(msg.Payload))
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the event")
	}

	select {
	case <-elsewhere.Send:
		t.Fatal("event leaked to another survey")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := &Connection{SurveyID: "s1", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)
	waitFor(t, func() bool { return hub.Subscribers("s1") == 1 })

	hub.Unregister(conn)
	waitFor(t, func() bool { return hub.Subscribers("s1") == 0 })

	_, open := <-conn.Send
	assert.False(t, open)
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := &Connection{SurveyID: "s1", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)
	waitFor(t, func() bool { return hub.Subscribers("s1") == 1 })

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.BroadcastToSurvey("s1", string(MsgResponseSubmitted), i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a full subscriber")
	}
}

func TestHub_CloseClosesSubscribers(t *testing.T) {
	hub := NewHub()
	conn := &Connection{SurveyID: "s1", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)
	waitFor(t, func() bool { return hub.Subscribers("s1") == 1 })

	hub.Close()
	waitFor(t, func() bool { return hub.Subscribers("s1") == 0 })

	_, open := <-conn.Send
	assert.False(t, open)

	// broadcasting after close is a no-op
	hub.BroadcastToSurvey("s1", string(MsgResponseSubmitted), nil)
}
