package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:    make(chan []byte, 10),
		OrderID: "order1",
	}

	hub.register <- client

	hub.Broadcast("order1", "PAID")

	select {
	case got := <-client.Send:
		var ev StatusEvent
		if err := json.Unmarshal(got, &ev); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if ev.OrderID != "order1" || ev.Status != "PAID" {
			t.Fatalf("expected order1/PAID, got %s/%s", ev.OrderID, ev.Status)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubSurvivesUnregisterAfterEviction(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// an unbuffered subscriber can never keep up; the first broadcast
	// evicts it and closes its channel
	slow := &Client{Send: make(chan []byte), OrderID: "order1"}
	hub.register <- slow
	hub.Broadcast("order1", "SUBMITTED")

	// the connection dropping afterwards must not close the channel again
	hub.unregister <- slow

	// the hub is still alive if a fresh subscriber keeps receiving
	fresh := &Client{Send: make(chan []byte, 1), OrderID: "order1"}
	hub.register <- fresh
	hub.Broadcast("order1", "PAID")

	select {
	case <-fresh.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("hub stopped broadcasting after eviction then unregister")
	}
}

func TestHubBroadcastIsScopedToOrder(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	subscribed := &Client{Send: make(chan []byte, 10), OrderID: "orderA"}
	other := &Client{Send: make(chan []byte, 10), OrderID: "orderB"}
	hub.register <- subscribed
	hub.register <- other

	hub.Broadcast("orderA", "FAILED")

	select {
	case <-subscribed.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("unrelated order received %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
